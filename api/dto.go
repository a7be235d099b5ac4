/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the internal
  ledger model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Field validation is done by the ledger service, not in DTOs. DTOs are pure
  data carriers; the handlers only translate shapes.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/types.go: Internal model
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/punwinger/bank-transaction/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// TransactionRequest is the body for create and update.
type TransactionRequest struct {
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Description  string          `json:"description,omitempty"`
}

// TransactionDTO represents a stored transaction in API responses.
type TransactionDTO struct {
	ID           uint64          `json:"id"`
	Owner        string          `json:"owner"`
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    int64           `json:"createdAt"`
	UpdatedAt    int64           `json:"updatedAt"`
}

// PageDTO wraps one page of an owner's transactions.
type PageDTO struct {
	Content []TransactionDTO `json:"content"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toDTO(tx *ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:           tx.ID,
		Owner:        tx.Owner,
		Counterparty: tx.Counterparty,
		Amount:       tx.Amount,
		Type:         string(tx.Type),
		Description:  tx.Description,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func toPageDTO(p *ledger.Page) PageDTO {
	content := make([]TransactionDTO, len(p.Content))
	for i, tx := range p.Content {
		content[i] = toDTO(tx)
	}
	return PageDTO{Content: content, Total: p.Total, Page: p.Page, Size: p.Size}
}

func toRequest(owner string, r TransactionRequest) ledger.Request {
	return ledger.Request{
		Owner:        owner,
		Counterparty: r.Counterparty,
		Amount:       r.Amount,
		Type:         ledger.TransactionType(r.Type),
		Description:  r.Description,
	}
}
