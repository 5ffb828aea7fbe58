package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepository implements domain.NoteRepository
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Upsert inserts or updates the note keyed on (user_id, date). The unique
// constraint on that pair guarantees at most one row per user per day.
func (r *NoteRepository) Upsert(ctx context.Context, userID uuid.UUID, date, content string) (*domain.Note, error) {
	query := `
		INSERT INTO notes (id, user_id, date, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, date)
		DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, date, content, created_at, updated_at
	`
	note, err := scanNote(r.pool.QueryRow(ctx, query, uuid.New(), userID, date, content, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert note: %w", err)
	}
	return note, nil
}

// ListByUser returns all of a user's notes, most recent date first.
func (r *NoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	query := `
		SELECT id, user_id, date, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// GetByDate returns the single note for (userID, date) or ErrNoteNotFound.
func (r *NoteRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.Note, error) {
	query := `
		SELECT id, user_id, date, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND date = $2
	`
	note, err := scanNote(r.pool.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// SearchByUser runs a full-text search scoped to the user's notes, ordered
// by the backend's relevance ranking.
func (r *NoteRepository) SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]domain.Note, error) {
	sql := `
		SELECT id, user_id, date, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		  AND content_tsv @@ plainto_tsquery('english', $2)
		ORDER BY ts_rank(content_tsv, plainto_tsquery('english', $2)) DESC, date DESC
	`
	rows, err := r.pool.Query(ctx, sql, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	var day time.Time
	if err := row.Scan(&n.ID, &n.UserID, &day, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.Date = day.Format(domain.DateLayout)
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]domain.Note, error) {
	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}
