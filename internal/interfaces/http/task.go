package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/harsham1998/dashboard-api/internal/domain/task"
)

type TaskHandler struct {
	repo task.Repository
}

func NewTaskHandler(repo task.Repository) *TaskHandler {
	return &TaskHandler{repo: repo}
}

type CreateTaskRequest struct {
	Text       string `json:"text"`
	Date       string `json:"date,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Status     string `json:"status,omitempty"`
}

type UpdateTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Status    *string `json:"status,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// HandleTasks serves /tasks: GET lists everything grouped by date,
// POST creates a task.
func (h *TaskHandler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TaskHandler) listAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.ListAll(r.Context())
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tasks":   tasks,
	})
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := task.CreateTaskParams{
		Text:     req.Text,
		Date:     req.Date,
		Assignee: req.AssignedTo,
		Status:   req.Status,
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := task.New(params, time.Now())
	if err := h.repo.Create(r.Context(), t); err != nil {
		log.Printf("Error creating task: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task added successfully",
		"task":    t,
		"date":    t.Date,
	})
}

// HandleTaskByPath serves /tasks/{key}: GET treats the key as a date
// bucket, PATCH treats it as a task ID.
func (h *TaskHandler) HandleTaskByPath(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	switch r.Method {
	case http.MethodGet:
		h.listByDate(w, r, key)
	case http.MethodPatch:
		h.update(w, r, key)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TaskHandler) listByDate(w http.ResponseWriter, r *http.Request, date string) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}

	tasks, err := h.repo.ListByDate(r.Context(), date)
	if err != nil {
		log.Printf("Error listing tasks for %s: %v", date, err)
		writeError(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"date":    date,
		"tasks":   tasks,
	})
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Task ID must be numeric")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.repo.Update(r.Context(), id, task.UpdateTaskParams{
		Text:      req.Text,
		Completed: req.Completed,
		Status:    req.Status,
		Note:      req.Note,
	})
	if errors.Is(err, task.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Printf("Error updating task %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"task":    t,
	})
}
