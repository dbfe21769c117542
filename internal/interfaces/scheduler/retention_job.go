package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/harsham1998/dashboard-api/internal/domain/transaction"
)

// RetentionJob prunes the transaction collection down to the newest keep
// records. The dashboard only ever shows recent activity, so anything
// older is dead weight.
type RetentionJob struct {
	repo transaction.Repository
	keep int
}

func NewRetentionJob(repo transaction.Repository, keep int) *RetentionJob {
	return &RetentionJob{repo: repo, keep: keep}
}

func (j *RetentionJob) Execute(ctx context.Context) error {
	deleted, err := j.repo.Prune(ctx, j.keep)
	if err != nil {
		return fmt.Errorf("retention prune failed: %w", err)
	}
	if deleted > 0 {
		log.Printf("Retention: pruned %d transactions, keeping newest %d", deleted, j.keep)
	}
	return nil
}

func (j *RetentionJob) Name() string {
	return fmt.Sprintf("transaction retention (keep %d)", j.keep)
}
