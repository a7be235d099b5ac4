/*
handlers.go - HTTP handlers for the transaction ledger

PURPOSE:
  Exposes the ledger service via REST. Handles HTTP request/response, JSON
  serialization, and delegates everything else to the ledger package.

ENDPOINTS:
  POST   /api/v1/users/{owner}/transactions        Create transaction
  GET    /api/v1/users/{owner}/transactions        List (page, size params)
  GET    /api/v1/users/{owner}/transactions/{id}   Get one
  PUT    /api/v1/users/{owner}/transactions/{id}   Replace
  DELETE /api/v1/users/{owner}/transactions/{id}   Delete

ERROR HANDLING:
  Ledger errors map onto HTTP statuses:
  - 400: validation, malformed id, page out of range, capacity exceeded
  - 404: no record for owner+id
  - 409: duplicate of the owner's most recent transaction
  - 500: anything unanticipated (generic message, no internal detail)

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/punwinger/bank-transaction/ledger"
)

// DefaultPageSize applies when the list query omits size.
const DefaultPageSize = 20

// Handler holds the ledger service the HTTP layer fronts.
type Handler struct {
	Ledger *ledger.Service
}

// NewHandler creates a handler over the given service.
func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{Ledger: svc}
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// CreateTransaction records a new transaction for the owner in the path.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Ledger.Create(r.Context(), toRequest(owner, req))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDTO(tx))
}

// GetTransaction returns a single transaction.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	id, err := ledger.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	tx, err := h.Ledger.Get(r.Context(), owner, id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(tx))
}

// UpdateTransaction replaces a transaction's fields, keeping id and
// creation time.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	id, err := ledger.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Ledger.Update(r.Context(), owner, id, toRequest(owner, req))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDTO(tx))
}

// DeleteTransaction removes a transaction.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	id, err := ledger.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := h.Ledger.Delete(r.Context(), owner, id); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTransactions returns one page of the owner's transactions, ascending
// by id. Query params: page (default 0), size (default 20, max 100).
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page parameter", err)
		return
	}
	size, err := queryInt(r, "size", DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid size parameter", err)
		return
	}

	result, err := h.Ledger.List(r.Context(), owner, page, size)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageDTO(result))
}

// =============================================================================
// HELPERS
// =============================================================================

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeLedgerError maps ledger error kinds onto HTTP statuses. Unrecognized
// errors get a generic 500 body so internal state never leaks to clients.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ledger.ErrDuplicateTransaction):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, ledger.ErrPageOutOfRange),
		errors.Is(err, ledger.ErrLedgerFull):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
