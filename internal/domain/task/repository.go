package task

import (
	"context"
)

// Repository defines the interface for task data access.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	// ListByDate returns tasks in one date bucket, oldest first.
	ListByDate(ctx context.Context, date string) ([]*Task, error)
	// ListAll returns every task grouped by date bucket.
	ListAll(ctx context.Context) (map[string][]*Task, error)
	Update(ctx context.Context, id int64, params UpdateTaskParams) (*Task, error)
}
