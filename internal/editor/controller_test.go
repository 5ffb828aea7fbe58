package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type saveRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error
	done  chan struct{}
}

func newSaveRecorder() *saveRecorder {
	return &saveRecorder{done: make(chan struct{}, 10)}
}

func (s *saveRecorder) save(ctx context.Context, date, content string) (*domain.Note, error) {
	s.mu.Lock()
	s.calls = append(s.calls, content)
	err := s.err
	s.mu.Unlock()
	s.done <- struct{}{}
	if err != nil {
		return nil, err
	}
	return &domain.Note{ID: uuid.New(), Date: date, Content: content}, nil
}

func (s *saveRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("save never ran")
	}
}

func TestController_PastDaysAreReadOnly(t *testing.T) {
	rec := newSaveRecorder()
	c := NewController(rec.save, time.Millisecond, WithClock(fixedClock))

	c.Edit(context.Background(), "2026-08-31", "rewriting history")

	time.Sleep(30 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.calls)
	assert.Equal(t, StatusSaved, c.Status())
}

func TestController_DebounceCollapsesEdits(t *testing.T) {
	rec := newSaveRecorder()
	c := NewController(rec.save, 20*time.Millisecond, WithClock(fixedClock))

	c.Edit(context.Background(), "2026-09-01", "h")
	c.Edit(context.Background(), "2026-09-01", "he")
	c.Edit(context.Background(), "2026-09-01", "hello")

	assert.Equal(t, StatusSaving, c.Status())

	rec.wait(t)
	rec.mu.Lock()
	calls := append([]string(nil), rec.calls...)
	rec.mu.Unlock()

	assert.Equal(t, []string{"hello"}, calls)
}

func TestController_SaveMergesIntoCache(t *testing.T) {
	rec := newSaveRecorder()
	c := NewController(rec.save, time.Millisecond, WithClock(fixedClock))

	c.SetNotes([]domain.Note{
		{Date: "2026-08-31", Content: "yesterday"},
	})

	c.Edit(context.Background(), "2026-09-01", "today's note")
	rec.wait(t)

	assert.Eventually(t, func() bool {
		return c.Status() == StatusSaved
	}, time.Second, time.Millisecond)

	notes := c.Notes()
	assert.Len(t, notes, 2)
	assert.Equal(t, "2026-09-01", notes[0].Date)
	assert.Equal(t, "today's note", notes[0].Content)
	assert.Equal(t, "2026-08-31", notes[1].Date)
}

func TestController_SaveFailureSetsErrorStatus(t *testing.T) {
	rec := newSaveRecorder()
	rec.err = errors.New("connection refused")

	var transitions []Status
	var mu sync.Mutex
	c := NewController(rec.save, time.Millisecond,
		WithClock(fixedClock),
		WithStatusFunc(func(s Status) {
			mu.Lock()
			transitions = append(transitions, s)
			mu.Unlock()
		}),
	)

	c.Edit(context.Background(), "2026-09-01", "doomed")
	rec.wait(t)

	assert.Eventually(t, func() bool {
		return c.Status() == StatusError
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusSaving, StatusError}, transitions)

	// The failed content never entered the cache.
	assert.Empty(t, c.Notes())
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 2, WordCount("hello world"))
	assert.Equal(t, 3, WordCount("  spread   out\nwords "))
}
