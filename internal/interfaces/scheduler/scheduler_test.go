package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{"03:00", ScheduleTime{3, 0}, false},
		{"23:59", ScheduleTime{23, 59}, false},
		{"0:5", ScheduleTime{0, 5}, false},
		{"24:00", ScheduleTime{}, true},
		{"12:60", ScheduleTime{}, true},
		{"noon", ScheduleTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScheduleTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_RequiresScheduleTime(t *testing.T) {
	_, err := New(Config{WorkerCount: 1, QueueSize: 1})
	if err == nil {
		t.Error("New() expected error with no schedule times")
	}
}

func TestShouldRun(t *testing.T) {
	s, err := New(Config{ScheduleTimes: []string{"03:00"}, WorkerCount: 1, QueueSize: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	at3 := time.Date(2025, 8, 23, 3, 0, 30, 0, time.UTC)
	if !s.shouldRun(at3) {
		t.Error("shouldRun at scheduled time = false, want true")
	}
	if s.shouldRun(at3) {
		t.Error("shouldRun fired twice in the same minute")
	}
	if s.shouldRun(time.Date(2025, 8, 23, 4, 0, 0, 0, time.UTC)) {
		t.Error("shouldRun at unscheduled time = true, want false")
	}

	nextDay := time.Date(2025, 8, 24, 3, 0, 0, 0, time.UTC)
	if !s.shouldRun(nextDay) {
		t.Error("shouldRun on next day = false, want true")
	}
}

type recordingJob struct {
	mu    sync.Mutex
	runs  int
	err   error
	doneC chan struct{}
}

func (j *recordingJob) Execute(_ context.Context) error {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	if j.doneC != nil {
		close(j.doneC)
	}
	return j.err
}

func (j *recordingJob) Name() string { return "recording job" }

func (j *recordingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func TestWorkerPool_ProcessesJobs(t *testing.T) {
	pool := NewWorkerPool(2, 0, 4)
	pool.Start()

	done := make(chan struct{})
	job := &recordingJob{doneC: done}
	if err := pool.Submit(job); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed in time")
	}

	pool.ShutdownWithTimeout(time.Second)
	if job.count() != 1 {
		t.Errorf("job ran %d times, want 1", job.count())
	}
}

func TestWorkerPool_QueueFull(t *testing.T) {
	// No workers started, so the queue never drains.
	pool := NewWorkerPool(0, 0, 1)

	if err := pool.Submit(&recordingJob{}); err != nil {
		t.Fatalf("first Submit() failed: %v", err)
	}
	if err := pool.Submit(&recordingJob{}); err == nil {
		t.Error("second Submit() expected queue full error, got nil")
	}
}

type fakePruneRepo struct {
	deleted  int
	keep     int
	pruneErr error
}

func (f *fakePruneRepo) Create(_ context.Context, _ *transaction.Transaction) error { return nil }
func (f *fakePruneRepo) GetByID(_ context.Context, _ int64) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}
func (f *fakePruneRepo) ListRecent(_ context.Context, _ int) ([]*transaction.Transaction, error) {
	return nil, nil
}
func (f *fakePruneRepo) Prune(_ context.Context, keep int) (int, error) {
	f.keep = keep
	return f.deleted, f.pruneErr
}

func TestRetentionJob(t *testing.T) {
	repo := &fakePruneRepo{deleted: 7}
	job := NewRetentionJob(repo, 50)

	if err := job.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if repo.keep != 50 {
		t.Errorf("Prune called with keep=%d, want 50", repo.keep)
	}
}

func TestRetentionJob_Error(t *testing.T) {
	repo := &fakePruneRepo{pruneErr: errors.New("storage down")}
	job := NewRetentionJob(repo, 50)

	if err := job.Execute(context.Background()); err == nil {
		t.Error("Execute() expected error, got nil")
	}
}
