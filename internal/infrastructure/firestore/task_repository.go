package firestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/harsham1998/dashboard-api/internal/domain/task"
)

type taskDoc struct {
	ID           int64     `firestore:"id"`
	Text         string    `firestore:"text"`
	Completed    bool      `firestore:"completed"`
	Assignee     string    `firestore:"assignee"`
	Status       string    `firestore:"status"`
	Note         string    `firestore:"note"`
	Issues       []string  `firestore:"issues"`
	Appreciation []string  `firestore:"appreciation"`
	Date         string    `firestore:"date"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

// TaskRepository implements task.Repository on Firestore. Tasks are
// bucketed by their date field, one document per task.
type TaskRepository struct {
	client *firestore.Client
}

func NewTaskRepository(client *firestore.Client) *TaskRepository {
	return &TaskRepository{client: client}
}

func (r *TaskRepository) col() *firestore.CollectionRef {
	return r.client.Collection(tasksCollection)
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	if _, err := r.col().Doc(strconv.FormatInt(t.ID, 10)).Set(ctx, toTaskDoc(t)); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	snap, err := r.col().Doc(strconv.FormatInt(id, 10)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return fromTaskSnap(snap)
}

func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]*task.Task, error) {
	iter := r.col().Where("date", "==", date).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	tasks := []*task.Task{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks for %s: %w", date, err)
		}
		t, err := fromTaskSnap(snap)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *TaskRepository) ListAll(ctx context.Context) (map[string][]*task.Task, error) {
	iter := r.col().OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	grouped := map[string][]*task.Task{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		t, err := fromTaskSnap(snap)
		if err != nil {
			return nil, err
		}
		grouped[t.Date] = append(grouped[t.Date], t)
	}
	return grouped, nil
}

// Update applies a partial update inside a Firestore transaction so
// concurrent PATCHes never clobber each other.
func (r *TaskRepository) Update(ctx context.Context, id int64, params task.UpdateTaskParams) (*task.Task, error) {
	ref := r.col().Doc(strconv.FormatInt(id, 10))

	var updated *task.Task
	err := r.client.RunTransaction(ctx, func(ctx context.Context, ftx *firestore.Transaction) error {
		snap, err := ftx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return task.ErrTaskNotFound
			}
			return err
		}
		t, err := fromTaskSnap(snap)
		if err != nil {
			return err
		}
		t.Apply(params)
		updated = t
		return ftx.Set(ref, toTaskDoc(t))
	})
	if err != nil {
		if err == task.ErrTaskNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

func toTaskDoc(t *task.Task) *taskDoc {
	return &taskDoc{
		ID:           t.ID,
		Text:         t.Text,
		Completed:    t.Completed,
		Assignee:     t.Assignee,
		Status:       t.Status,
		Note:         t.Note,
		Issues:       t.Issues,
		Appreciation: t.Appreciation,
		Date:         t.Date,
		CreatedAt:    t.CreatedAt,
	}
}

func fromTaskSnap(snap *firestore.DocumentSnapshot) (*task.Task, error) {
	var doc taskDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode task %s: %w", snap.Ref.ID, err)
	}
	t := &task.Task{
		ID:           doc.ID,
		Text:         doc.Text,
		Completed:    doc.Completed,
		Assignee:     doc.Assignee,
		Status:       doc.Status,
		Note:         doc.Note,
		Issues:       doc.Issues,
		Appreciation: doc.Appreciation,
		Date:         doc.Date,
		CreatedAt:    doc.CreatedAt,
	}
	if t.Issues == nil {
		t.Issues = []string{}
	}
	if t.Appreciation == nil {
		t.Appreciation = []string{}
	}
	return t, nil
}
