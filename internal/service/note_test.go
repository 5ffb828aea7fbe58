package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/dkellner/daybook/internal/search"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoteService_Save(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success invokes OnSaved", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)

		saved := &domain.Note{ID: uuid.New(), UserID: userID, Date: "2026-09-01", Content: "hello"}
		mockRepo.On("Upsert", ctx, userID, "2026-09-01", "hello").Return(saved, nil)

		var hooked *domain.Note
		svc.OnSaved = func(n *domain.Note) { hooked = n }

		note, err := svc.Save(ctx, userID, "2026-09-01", "hello")
		assert.NoError(t, err)
		assert.Equal(t, saved, note)
		assert.Equal(t, saved, hooked)

		mockRepo.AssertExpectations(t)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)

		_, err := svc.Save(ctx, uuid.Nil, "2026-09-01", "hello")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "Upsert")
	})
}

func TestNoteService_Search(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	notes := []domain.Note{
		{Date: "2026-09-01", Content: "Met Bob at the park"},
		{Date: "2026-08-31", Content: "quiet day"},
		{Date: "2026-08-15", Content: "bob called again"},
	}

	t.Run("empty query returns full list", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)
		mockRepo.On("ListByUser", ctx, userID).Return(notes, nil)

		got, mode, err := svc.Search(ctx, userID, "   ")
		assert.NoError(t, err)
		assert.Equal(t, search.ModeNone, mode)
		assert.Equal(t, notes, got)
		mockRepo.AssertNotCalled(t, "SearchByUser")
	})

	t.Run("short query filters locally", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)
		mockRepo.On("ListByUser", ctx, userID).Return(notes, nil)

		got, mode, err := svc.Search(ctx, userID, "bob")
		assert.NoError(t, err)
		assert.Equal(t, search.ModeClient, mode)
		assert.Equal(t, []domain.Note{notes[0], notes[2]}, got)
		mockRepo.AssertNotCalled(t, "SearchByUser")
	})

	t.Run("long query uses full-text backend", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)
		expected := []domain.Note{notes[1]}
		mockRepo.On("SearchByUser", ctx, userID, "quiet evening").Return(expected, nil)

		got, mode, err := svc.Search(ctx, userID, "quiet evening")
		assert.NoError(t, err)
		assert.Equal(t, search.ModeServer, mode)
		assert.Equal(t, expected, got)
		mockRepo.AssertNotCalled(t, "ListByUser")
	})

	t.Run("backend failure degrades to local filter", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		svc := NewNoteService(mockRepo)
		mockRepo.On("SearchByUser", ctx, userID, "bob called").Return(nil, errors.New("tsquery syntax error"))
		mockRepo.On("ListByUser", ctx, userID).Return(notes, nil)

		got, mode, err := svc.Search(ctx, userID, "bob called")
		assert.NoError(t, err)
		assert.Equal(t, search.ModeClient, mode)
		assert.Equal(t, []domain.Note{notes[2]}, got)
		mockRepo.AssertExpectations(t)
	})
}
