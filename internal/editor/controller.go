// Package editor holds the client-side core of the note editing surface:
// debounced autosave with status reporting and a local note cache that is
// updated by merge rather than refetch.
package editor

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/rs/zerolog/log"
)

// Status is the autosave indicator state.
type Status string

const (
	StatusSaved  Status = "saved"
	StatusSaving Status = "saving"
	StatusError  Status = "error"
)

// SaveFunc persists a day's content and returns the stored note.
type SaveFunc func(ctx context.Context, date, content string) (*domain.Note, error)

// Controller debounces content edits into persistence calls. Only the
// current calendar day is writable; edits addressed to any other day are
// ignored entirely. A new edit within the debounce window cancels the
// pending one, so at most one save is in flight per window.
type Controller struct {
	save     SaveFunc
	debounce time.Duration
	now      func() time.Time

	mu       sync.Mutex
	notes    map[string]domain.Note // keyed by date
	status   Status
	onStatus func(Status)
	timer    *time.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithStatusFunc registers a callback invoked on every status transition.
func WithStatusFunc(fn func(Status)) Option {
	return func(c *Controller) { c.onStatus = fn }
}

// NewController creates an autosave controller around a save function.
func NewController(save SaveFunc, debounce time.Duration, opts ...Option) *Controller {
	c := &Controller{
		save:     save,
		debounce: debounce,
		now:      time.Now,
		notes:    make(map[string]domain.Note),
		status:   StatusSaved,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNotes seeds the local cache, replacing whatever it held.
func (c *Controller) SetNotes(notes []domain.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = make(map[string]domain.Note, len(notes))
	for _, n := range notes {
		c.notes[n.Date] = n
	}
}

// Notes returns the cached notes, most recent date first.
func (c *Controller) Notes() []domain.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	notes := make([]domain.Note, 0, len(c.notes))
	for _, n := range c.notes {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date > notes[j].Date })
	return notes
}

// Status returns the current autosave state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Edit records a content change for the given day. Past (or future) days are
// read-only: no timer is started and nothing is persisted. For today, the
// pending timer is replaced and the controller enters StatusSaving until the
// debounced save resolves.
func (c *Controller) Edit(ctx context.Context, date, content string) {
	if date != domain.Today(c.now()) {
		return
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.setStatusLocked(StatusSaving)
	c.timer = time.AfterFunc(c.debounce, func() {
		c.flush(ctx, date, content)
	})
	c.mu.Unlock()
}

// flush performs the persistence call once the debounce window elapses. On
// success the stored note is merged into the cache by date; the list is
// never refetched wholesale, since a refetch could clobber in-flight edits
// with stale data.
func (c *Controller) flush(ctx context.Context, date, content string) {
	note, err := c.save(ctx, date, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("autosave failed")
		c.setStatusLocked(StatusError)
		return
	}

	c.notes[note.Date] = *note
	c.setStatusLocked(StatusSaved)
}

func (c *Controller) setStatusLocked(s Status) {
	if c.status == s {
		return
	}
	c.status = s
	if c.onStatus != nil {
		c.onStatus(s)
	}
}

// WordCount reports the number of whitespace-separated words in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
