package scheduler

import "context"

// Job is a unit of background work submitted to the worker pool.
type Job interface {
	Execute(ctx context.Context) error
	Name() string
}
