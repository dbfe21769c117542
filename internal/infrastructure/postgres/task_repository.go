package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/harsham1998/dashboard-api/internal/domain/task"
)

// TaskRepository implements task.Repository on Postgres.
type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, text, completed, assignee, status, note, issues, appreciation, date, created_at`

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Text, t.Completed, t.Assignee, t.Status, t.Note,
		pq.Array(t.Issues), pq.Array(t.Appreciation), t.Date, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, task.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE date = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for %s: %w", date, err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) ListAll(ctx context.Context) (map[string][]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	grouped := map[string][]*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		grouped[t.Date] = append(grouped[t.Date], t)
	}
	return grouped, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, id int64, params task.UpdateTaskParams) (*task.Task, error) {
	query := `
		UPDATE tasks SET
			text = COALESCE($2, text),
			completed = COALESCE($3, completed),
			status = COALESCE($4, status),
			note = COALESCE($5, note)
		WHERE id = $1
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id,
		params.Text, params.Completed, params.Status, params.Note))
	if err == sql.ErrNoRows {
		return nil, task.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

func scanTask(row scanner) (*task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Text, &t.Completed, &t.Assignee, &t.Status, &t.Note,
		pq.Array(&t.Issues), pq.Array(&t.Appreciation), &t.Date, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.Issues == nil {
		t.Issues = []string{}
	}
	if t.Appreciation == nil {
		t.Appreciation = []string{}
	}
	return &t, nil
}
