package service

import (
	"context"
	"fmt"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/dkellner/daybook/internal/search"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NoteService handles note persistence and retrieval for authenticated users.
type NoteService struct {
	noteRepo domain.NoteRepository

	// OnSaved, when set, is invoked after every successful save so
	// dependent views can refresh.
	OnSaved func(note *domain.Note)
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo domain.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// Save upserts the note for (userID, date). Saving the same day twice leaves
// exactly one record holding the latest content.
func (s *NoteService) Save(ctx context.Context, userID uuid.UUID, date, content string) (*domain.Note, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	note, err := s.noteRepo.Upsert(ctx, userID, date, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	if s.OnSaved != nil {
		s.OnSaved(note)
	}
	return note, nil
}

// List returns all of the user's notes, most recent date first.
func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.noteRepo.ListByUser(ctx, userID)
}

// GetByDate returns the user's note for one day, or domain.ErrNoteNotFound.
func (s *NoteService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.Note, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.noteRepo.GetByDate(ctx, userID, date)
}

// Search routes a query by length: empty queries reset to the full list,
// short ones run the substring filter over the user's loaded notes, long
// ones go to the full-text backend. A backend failure degrades to the
// substring filter instead of surfacing an error.
func (s *NoteService) Search(ctx context.Context, userID uuid.UUID, query string) ([]domain.Note, search.Mode, error) {
	if userID == uuid.Nil {
		return nil, search.ModeNone, domain.ErrUnauthenticated
	}

	mode := search.ModeFor(query)
	switch mode {
	case search.ModeNone:
		notes, err := s.noteRepo.ListByUser(ctx, userID)
		return notes, mode, err

	case search.ModeClient:
		notes, err := s.noteRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, mode, err
		}
		return search.Filter(notes, query), mode, nil

	default:
		notes, err := s.noteRepo.SearchByUser(ctx, userID, query)
		if err == nil {
			return notes, mode, nil
		}

		// Degrade to the local filter rather than erroring out.
		log.Warn().Err(err).Str("query", query).Msg("full-text search failed, falling back to substring filter")
		loaded, listErr := s.noteRepo.ListByUser(ctx, userID)
		if listErr != nil {
			return nil, mode, listErr
		}
		return search.Filter(loaded, query), search.ModeClient, nil
	}
}
