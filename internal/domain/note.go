package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used as part of the note natural key.
const DateLayout = "2006-01-02"

// Note is a per-calendar-day free-text record owned by one user. The natural
// key is (UserID, Date); there is never more than one note per pair.
type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteSave is the payload for saving a day's note. Content may be empty;
// an empty save still creates the day's record.
type NoteSave struct {
	Content string `json:"content" validate:"max=100000"`
}

// NoteRepository defines the interface for note storage.
type NoteRepository interface {
	// Upsert inserts or updates the note for (userID, date) and returns
	// the stored row.
	Upsert(ctx context.Context, userID uuid.UUID, date, content string) (*Note, error)

	// ListByUser returns all notes owned by userID, most recent date
	// first. An empty slice, not an error, when the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Note, error)

	// GetByDate returns the note for (userID, date) or ErrNoteNotFound.
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*Note, error)

	// SearchByUser runs a full-text search over the user's notes,
	// ordered by relevance.
	SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]Note, error)
}

// Today returns now formatted as a calendar day.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
