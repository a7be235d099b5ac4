package ledger

// validateRequest enforces the field bounds shared by create and update:
//
//	owner         non-empty, at most 20 characters
//	counterparty  1-20 characters when present; required and distinct from
//	              owner for transfers
//	amount        strictly positive, at most 2 fractional digits, at most
//	              999,999,999.99 (which also caps integer digits at 9)
//	type          one of DEPOSIT, WITHDRAWAL, TRANSFER
//	description   at most 20 characters
func validateRequest(req Request) error {
	if req.Owner == "" {
		return &ValidationError{Field: "owner", Message: "owner must not be empty"}
	}
	if len(req.Owner) > MaxOwnerLen {
		return &ValidationError{Field: "owner", Message: "owner must not exceed 20 characters"}
	}

	if !req.Type.Valid() {
		return &ValidationError{Field: "type", Message: "type must be DEPOSIT, WITHDRAWAL or TRANSFER"}
	}

	if req.Type == TypeTransfer {
		if req.Counterparty == "" {
			return &ValidationError{Field: "counterparty", Message: "transfer requires a counterparty"}
		}
		if req.Counterparty == req.Owner {
			return &ValidationError{Field: "counterparty", Message: "cannot transfer to self"}
		}
	}
	if req.Counterparty != "" && len(req.Counterparty) > MaxOwnerLen {
		return &ValidationError{Field: "counterparty", Message: "counterparty must not exceed 20 characters"}
	}

	if !req.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "amount must be greater than 0"}
	}
	if req.Amount.Exponent() < -MaxFractionDigits {
		return &ValidationError{Field: "amount", Message: "amount must not have more than 2 fractional digits"}
	}
	if req.Amount.GreaterThan(MaxAmount) {
		return &ValidationError{Field: "amount", Message: "amount must not exceed 999,999,999.99"}
	}

	if len(req.Description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Message: "description must not exceed 20 characters"}
	}

	return nil
}
