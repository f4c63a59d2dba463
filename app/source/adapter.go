package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/day-reel/app/content"
)

var (
	ErrEmpty     = errors.New("sources returned no collections")
	ErrNoSources = errors.New("no content sources configured")
)

// Result is the outcome of one resolve cycle. Err is set only when the
// fallback collections were substituted.
type Result struct {
	Collections  content.Sequence
	UsedFallback bool
	Err          error
	ResolvedAt   time.Time
}

// Adapter merges every configured source and substitutes the fallback list
// when all of them fail or nothing comes back.
type Adapter struct {
	sources  []Source
	fallback content.Sequence
}

func NewAdapter(fallback content.Sequence, sources ...Source) *Adapter {
	if len(fallback) == 0 {
		fallback = DefaultFallback()
	}
	return &Adapter{
		sources:  sources,
		fallback: fallback,
	}
}

func (a *Adapter) Sources() []Source {
	return a.sources
}

func (a *Adapter) Fallback() content.Sequence {
	return clone(a.fallback)
}

type timeoutSource interface {
	Timeout() time.Duration
}

// Budget is how long Resolve may take when every source runs into its own
// timeout. Sources without one count as zero.
func (a *Adapter) Budget() time.Duration {
	var total time.Duration
	for _, src := range a.sources {
		if ts, ok := src.(timeoutSource); ok && ts.Timeout() > 0 {
			total += ts.Timeout()
		}
	}
	return total
}

func (a *Adapter) Resolve(ctx context.Context) Result {
	started := time.Now()

	seq, err := a.fetchAll(ctx)
	if err == nil && len(seq) == 0 {
		err = ErrEmpty
	}

	if err != nil {
		slog.Warn("Using fallback collections", "error", err, "duration", time.Since(started))
		return Result{
			Collections:  a.Fallback(),
			UsedFallback: true,
			Err:          err,
			ResolvedAt:   time.Now(),
		}
	}

	slog.Info("Collections resolved",
		"days", len(seq),
		"items", seq.ItemCount(),
		"duration", time.Since(started))

	return Result{
		Collections: seq,
		ResolvedAt:  time.Now(),
	}
}

func (a *Adapter) fetchAll(ctx context.Context) (content.Sequence, error) {
	if len(a.sources) == 0 {
		return nil, ErrNoSources
	}

	grouper := content.NewGrouper()
	var errs []error

	for _, src := range a.sources {
		seq, err := src.Fetch(ctx)
		if err != nil {
			slog.Warn("Source fetch failed", "source", src.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		grouper.AddSequence(seq)
	}

	if len(errs) == len(a.sources) {
		return nil, errors.Join(errs...)
	}

	return grouper.Sequence(), nil
}

func clone(seq content.Sequence) content.Sequence {
	out := make(content.Sequence, len(seq))
	for i, c := range seq {
		items := make([]content.Item, len(c.Items))
		copy(items, c.Items)
		out[i] = content.DatedCollection{Date: c.Date, Items: items}
	}
	return out
}
