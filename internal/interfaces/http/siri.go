package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harsham1998/dashboard-api/internal/domain/task"
	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
)

// SiriHandler serves the voice-assistant endpoints. Siri shortcuts can
// only issue GET requests with query parameters, so both endpoints are
// GET despite being writes.
type SiriHandler struct {
	tasks        task.Repository
	transactions *transaction.Service
}

func NewSiriHandler(tasks task.Repository, transactions *transaction.Service) *SiriHandler {
	return &SiriHandler{tasks: tasks, transactions: transactions}
}

// HandleAddTask serves GET /siri/add-task?text=...
func (h *SiriHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	text := r.URL.Query().Get("text")
	if text == "" {
		text = r.URL.Query().Get("task")
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, "Task text is required. Use ?text=your_task")
		return
	}

	t := task.New(task.CreateTaskParams{Text: text}, time.Now())
	if err := h.tasks.Create(r.Context(), t); err != nil {
		log.Printf("Error creating Siri task: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save task")
		return
	}

	log.Printf("Siri task added: %q for %s", t.Text, t.Date)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Task added via Siri: %q", t.Text),
		"task":    t,
		"date":    t.Date,
	})
}

// HandleAddTransaction serves GET /siri/addTransaction?message=...
//
// A message the extractor cannot parse is answered with HTTP 200 and
// ignored=true: extraction failure is a normal outcome, and the raw text
// is still stored for review.
func (h *SiriHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message parameter is required")
		return
	}

	tx, err := h.transactions.Ingest(r.Context(), message)
	if err != nil {
		if errors.Is(err, transaction.ErrNotTransaction) ||
			errors.Is(err, transaction.ErrNoAmount) ||
			errors.Is(err, transaction.ErrMalformedNumber) {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"message": "Message does not contain transaction information",
				"ignored": true,
			})
			return
		}
		log.Printf("Error ingesting transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	log.Printf("Transaction added: %s ₹%s via %s", tx.Direction, tx.Amount.StringFixed(2), tx.Mode)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Transaction added successfully",
		"transaction": tx,
	})
}
