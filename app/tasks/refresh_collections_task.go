package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lysyi3m/day-reel/app/browser"
)

type RefreshCollectionsTask struct {
	Task
	state    *browser.State
	resolver Resolver
}

func NewRefreshCollectionsTask(state *browser.State, resolver Resolver) *RefreshCollectionsTask {
	task := NewTask(TaskTypeRefreshCollections)
	// A failed refresh falls back until the next tick.
	task.MaxRetries = 0

	return &RefreshCollectionsTask{
		Task:     task,
		state:    state,
		resolver: resolver,
	}
}

func (t *RefreshCollectionsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	generation, ok := t.state.BeginRefresh()
	if !ok {
		slog.Debug("Refresh already in flight, skipping", "id", t.ID)
		return nil
	}

	result := t.resolver.Resolve(ctx)

	// Cancellation means the scheduler is stopping. A deadline still leaves a
	// complete result (usually the fallback) that has to be shown.
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		t.state.AbortRefresh(generation)
		return err
	}

	if !t.state.CompleteRefresh(generation, result) {
		slog.Debug("Discarding stale refresh result", "id", t.ID, "generation", generation)
		return nil
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"days", len(result.Collections),
		"fallback", result.UsedFallback)

	return ctx.Err()
}
