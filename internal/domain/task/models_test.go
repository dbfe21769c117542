package task

import (
	"testing"
	"time"
)

func TestCreateTaskParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateTaskParams
		wantErr bool
	}{
		{"Valid", CreateTaskParams{Text: "Buy groceries"}, false},
		{"ValidWithDate", CreateTaskParams{Text: "Ship release", Date: "2025-08-23"}, false},
		{"EmptyText", CreateTaskParams{Text: "   "}, true},
		{"BadDate", CreateTaskParams{Text: "x", Date: "23-08-2025"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2025, 8, 23, 10, 30, 0, 0, time.UTC)
	got := New(CreateTaskParams{Text: "  Buy groceries  "}, now)

	if got.ID != now.UnixMilli() {
		t.Errorf("ID = %d, want %d", got.ID, now.UnixMilli())
	}
	if got.Text != "Buy groceries" {
		t.Errorf("Text = %q, want trimmed text", got.Text)
	}
	if got.Date != "2025-08-23" {
		t.Errorf("Date = %q, want 2025-08-23", got.Date)
	}
	if got.Assignee != DefaultAssignee {
		t.Errorf("Assignee = %q, want %q", got.Assignee, DefaultAssignee)
	}
	if got.Status != StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, StatusPending)
	}
	if got.Completed {
		t.Error("Completed = true, want false")
	}
	if got.Issues == nil || got.Appreciation == nil {
		t.Error("Issues/Appreciation should be empty slices, not nil")
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	now := time.Now()
	got := New(CreateTaskParams{
		Text:     "Review PR",
		Date:     "2025-09-01",
		Assignee: "Ujjawal",
		Status:   "programming",
	}, now)

	if got.Date != "2025-09-01" {
		t.Errorf("Date = %q, want explicit date", got.Date)
	}
	if got.Assignee != "Ujjawal" {
		t.Errorf("Assignee = %q, want Ujjawal", got.Assignee)
	}
	if got.Status != "programming" {
		t.Errorf("Status = %q, want programming", got.Status)
	}
}
