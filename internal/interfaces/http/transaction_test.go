package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
)

func getTransactionRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/transactions/"+id, nil)
	req.SetPathValue("id", id)
	return req
}

func TestHandleGetTransaction(t *testing.T) {
	repo := &mockTransactionRepo{}
	repo.created = append(repo.created, &transaction.Transaction{
		ID:        1734000000000,
		Amount:    decimal.RequireFromString("500.00"),
		Direction: transaction.Debited,
		Bank:      "HDFC",
		Mode:      transaction.ModeUPI,
		Parsed:    true,
		Timestamp: time.Now(),
	})
	handler := NewTransactionHandler(transaction.NewService(repo, nil))

	rr := httptest.NewRecorder()
	handler.HandleGetTransaction(rr, getTransactionRequest("1734000000000"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != true {
		t.Error("success = false, want true")
	}
	tx, ok := body["transaction"].(map[string]any)
	if !ok {
		t.Fatalf("transaction missing from body: %v", body)
	}
	if tx["bank"] != "HDFC" {
		t.Errorf("bank = %v, want HDFC", tx["bank"])
	}
}

func TestHandleGetTransaction_NotFound(t *testing.T) {
	handler := NewTransactionHandler(transaction.NewService(&mockTransactionRepo{}, nil))

	rr := httptest.NewRecorder()
	handler.HandleGetTransaction(rr, getTransactionRequest("42"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestHandleGetTransaction_BadID(t *testing.T) {
	handler := NewTransactionHandler(transaction.NewService(&mockTransactionRepo{}, nil))

	rr := httptest.NewRecorder()
	handler.HandleGetTransaction(rr, getTransactionRequest("not-a-number"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
