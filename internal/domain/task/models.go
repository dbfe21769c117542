package task

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// Default values applied to new tasks, matching the dashboard client.
const (
	DefaultAssignee = "Harsha (Me)"
	StatusPending   = "pending"
)

// Task is one dashboard task, bucketed by date (YYYY-MM-DD).
type Task struct {
	ID           int64     `json:"id"` // ms-epoch at creation time
	Text         string    `json:"text"`
	Completed    bool      `json:"completed"`
	Assignee     string    `json:"assignee"`
	Status       string    `json:"status"`
	Note         string    `json:"note"`
	Issues       []string  `json:"issues"`
	Appreciation []string  `json:"appreciation"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateTaskParams struct {
	Text     string
	Date     string
	Assignee string
	Status   string
}

func (p *CreateTaskParams) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return errors.New("task text is required")
	}
	if p.Date != "" {
		if _, err := time.Parse("2006-01-02", p.Date); err != nil {
			return errors.New("date must be YYYY-MM-DD")
		}
	}
	return nil
}

// New builds a task from params, filling defaults the way the original
// dashboard does.
func New(p CreateTaskParams, now time.Time) *Task {
	date := p.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	assignee := p.Assignee
	if assignee == "" {
		assignee = DefaultAssignee
	}
	status := p.Status
	if status == "" {
		status = StatusPending
	}

	return &Task{
		ID:           now.UnixMilli(),
		Text:         strings.TrimSpace(p.Text),
		Completed:    false,
		Assignee:     assignee,
		Status:       status,
		Note:         "",
		Issues:       []string{},
		Appreciation: []string{},
		Date:         date,
		CreatedAt:    now,
	}
}

// UpdateTaskParams carries partial updates; nil fields are left unchanged.
type UpdateTaskParams struct {
	Text      *string
	Completed *bool
	Status    *string
	Note      *string
}

// Apply merges non-nil params into the task.
func (t *Task) Apply(p UpdateTaskParams) {
	if p.Text != nil {
		t.Text = strings.TrimSpace(*p.Text)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
}
