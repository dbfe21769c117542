package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// HandleListTransactions serves GET /transactions?limit=N (default 5).
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be numeric")
			return
		}
		limit = parsed
	}

	transactions, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// HandleGetTransaction serves GET /transactions/{id}.
func (h *TransactionHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Transaction ID must be numeric")
		return
	}

	tx, err := h.service.Get(r.Context(), id)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		log.Printf("Error getting transaction %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"transaction": tx,
	})
}
