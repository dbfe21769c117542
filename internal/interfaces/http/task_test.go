package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harsham1998/dashboard-api/internal/domain/task"
)

type mockTaskRepo struct {
	tasks   map[int64]*task.Task
	listErr error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: map[int64]*task.Task{}}
}

func (m *mockTaskRepo) Create(_ context.Context, t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id int64) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}

func (m *mockTaskRepo) ListByDate(_ context.Context, date string) ([]*task.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []*task.Task{}
	for _, t := range m.tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) ListAll(_ context.Context) (map[string][]*task.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	grouped := map[string][]*task.Task{}
	for _, t := range m.tasks {
		grouped[t.Date] = append(grouped[t.Date], t)
	}
	return grouped, nil
}

func (m *mockTaskRepo) Update(_ context.Context, id int64, params task.UpdateTaskParams) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	t.Apply(params)
	return t, nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestHandleTasks_Create(t *testing.T) {
	repo := newMockTaskRepo()
	handler := NewTaskHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/tasks",
		strings.NewReader(`{"text":"Buy groceries","date":"2025-08-23"}`))
	rr := httptest.NewRecorder()
	handler.HandleTasks(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["success"] != true {
		t.Error("success = false, want true")
	}
	if body["date"] != "2025-08-23" {
		t.Errorf("date = %v, want 2025-08-23", body["date"])
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("stored %d tasks, want 1", len(repo.tasks))
	}
	for _, stored := range repo.tasks {
		if stored.Assignee != task.DefaultAssignee {
			t.Errorf("Assignee = %q, want default", stored.Assignee)
		}
	}
}

func TestHandleTasks_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"EmptyText", `{"text":""}`},
		{"BadDate", `{"text":"x","date":"23/08/2025"}`},
		{"NotJSON", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTaskHandler(newMockTaskRepo())

			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.HandleTasks(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			body := decodeBody(t, rr)
			if body["success"] != false {
				t.Error("success = true, want false")
			}
		})
	}
}

func TestHandleTasks_ListGroupedByDate(t *testing.T) {
	repo := newMockTaskRepo()
	repo.tasks[1] = &task.Task{ID: 1, Text: "a", Date: "2025-08-22"}
	repo.tasks[2] = &task.Task{ID: 2, Text: "b", Date: "2025-08-23"}
	handler := NewTaskHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rr := httptest.NewRecorder()
	handler.HandleTasks(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	tasks, ok := body["tasks"].(map[string]any)
	if !ok {
		t.Fatalf("tasks = %T, want date-grouped object", body["tasks"])
	}
	if len(tasks) != 2 {
		t.Errorf("got %d date buckets, want 2", len(tasks))
	}
}

func TestHandleTaskByPath_GetByDate(t *testing.T) {
	repo := newMockTaskRepo()
	repo.tasks[1] = &task.Task{ID: 1, Text: "ship release", Date: "2025-08-23"}
	handler := NewTaskHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/tasks/2025-08-23", nil)
	req.SetPathValue("key", "2025-08-23")
	rr := httptest.NewRecorder()
	handler.HandleTaskByPath(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["date"] != "2025-08-23" {
		t.Errorf("date = %v", body["date"])
	}
	if tasks, ok := body["tasks"].([]any); !ok || len(tasks) != 1 {
		t.Errorf("tasks = %v, want one task", body["tasks"])
	}
}

func TestHandleTaskByPath_GetBadDate(t *testing.T) {
	handler := NewTaskHandler(newMockTaskRepo())

	req := httptest.NewRequest(http.MethodGet, "/tasks/tomorrow", nil)
	req.SetPathValue("key", "tomorrow")
	rr := httptest.NewRecorder()
	handler.HandleTaskByPath(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleTaskByPath_Patch(t *testing.T) {
	repo := newMockTaskRepo()
	repo.tasks[1724400000000] = &task.Task{ID: 1724400000000, Text: "old", Status: "pending"}
	handler := NewTaskHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/tasks/1724400000000",
		strings.NewReader(`{"completed":true,"status":"done"}`))
	req.SetPathValue("key", "1724400000000")
	rr := httptest.NewRecorder()
	handler.HandleTaskByPath(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	updated := repo.tasks[1724400000000]
	if !updated.Completed || updated.Status != "done" {
		t.Errorf("task not updated: %+v", updated)
	}
	if updated.Text != "old" {
		t.Errorf("Text = %q, unset field should be unchanged", updated.Text)
	}
}

func TestHandleTaskByPath_PatchNotFound(t *testing.T) {
	handler := NewTaskHandler(newMockTaskRepo())

	req := httptest.NewRequest(http.MethodPatch, "/tasks/42", strings.NewReader(`{"completed":true}`))
	req.SetPathValue("key", "42")
	rr := httptest.NewRecorder()
	handler.HandleTaskByPath(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestHandleTasks_MethodNotAllowed(t *testing.T) {
	handler := NewTaskHandler(newMockTaskRepo())

	req := httptest.NewRequest(http.MethodDelete, "/tasks", nil)
	rr := httptest.NewRecorder()
	handler.HandleTasks(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}
