package tasks

import (
	"context"

	"github.com/lysyi3m/day-reel/app/source"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the HTTP handlers to queue refreshes.
//
//	scheduler := NewScheduler(state, adapter, interval, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueRefresh()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueRefresh() (TaskInterface, error)
}

// Resolver produces the collections for one refresh cycle.
type Resolver interface {
	Resolve(ctx context.Context) source.Result
}
