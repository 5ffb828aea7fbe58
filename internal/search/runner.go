package search

import (
	"context"
	"sync"
	"time"

	"github.com/dkellner/daybook/internal/domain"
)

// ExecFunc performs one search for a query.
type ExecFunc func(ctx context.Context, query string) ([]domain.Note, error)

// DeliverFunc receives results for the query they belong to.
type DeliverFunc func(query string, notes []domain.Note, err error)

// Runner debounces query input and drops stale responses. Each dispatch is
// stamped with a monotonically increasing sequence number; a result is
// delivered only while its dispatch is still the newest, so a slow older
// search can never overwrite a newer one.
type Runner struct {
	debounce time.Duration
	exec     ExecFunc
	deliver  DeliverFunc

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewRunner creates a debounced search runner.
func NewRunner(debounce time.Duration, exec ExecFunc, deliver DeliverFunc) *Runner {
	return &Runner{
		debounce: debounce,
		exec:     exec,
		deliver:  deliver,
	}
}

// Query schedules a search for query after the debounce window. A newer call
// within the window replaces the pending one.
func (r *Runner) Query(ctx context.Context, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.seq++
	seq := r.seq

	r.timer = time.AfterFunc(r.debounce, func() {
		notes, err := r.exec(ctx, query)

		r.mu.Lock()
		stale := seq != r.seq
		r.mu.Unlock()
		if stale {
			return
		}
		r.deliver(query, notes, err)
	})
}

// Cancel drops any pending dispatch and marks in-flight searches stale.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.seq++
}
