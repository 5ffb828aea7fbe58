package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these to
// HTTP status codes; anything else is treated as a storage failure.
var (
	// ErrUnauthenticated means no verified user identity was present.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNoteNotFound means no note exists for the requested (user, date)
	// pair. Distinguished from a genuine storage error.
	ErrNoteNotFound = errors.New("note not found")

	// ErrSessionNotFound means the referenced chat session does not exist
	// in today's chat log.
	ErrSessionNotFound = errors.New("chat session not found")
)
