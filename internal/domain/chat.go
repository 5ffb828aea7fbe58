package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatLogVersion is the schema version of the persisted DailyChatLog. A
// stored log with any other version is discarded and reinitialized on load.
const ChatLogVersion = 1

// SessionTitleMaxLen is the display length a session title is truncated to.
const SessionTitleMaxLen = 40

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn in a chat session.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatSession is one conversational thread with the assistant, scoped to a
// single calendar day.
type ChatSession struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// IdleSince reports whether the session has been untouched for at least ttl.
func (s *ChatSession) IdleSince(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastActiveAt) >= ttl
}

// DailyChatLog holds all of a user's chat sessions for one calendar day.
// The whole structure is discarded when Date no longer matches today.
type DailyChatLog struct {
	Version          int                        `json:"version"`
	Date             string                     `json:"date"`
	CurrentSessionID *uuid.UUID                 `json:"current_session_id,omitempty"`
	Sessions         map[uuid.UUID]*ChatSession `json:"sessions"`
}

// NewDailyChatLog returns an empty log for the given day.
func NewDailyChatLog(date string) *DailyChatLog {
	return &DailyChatLog{
		Version:  ChatLogVersion,
		Date:     date,
		Sessions: make(map[uuid.UUID]*ChatSession),
	}
}

// ValidFor reports whether the log can be kept for the given day. False
// means the caller must reinitialize it empty.
func (l *DailyChatLog) ValidFor(date string) bool {
	return l != nil && l.Version == ChatLogVersion && l.Date == date && l.Sessions != nil
}

// ExpireIdleCurrent clears the current-session pointer when the session it
// references no longer exists or has been idle for at least ttl. The session
// itself is kept; only the pointer is dropped.
func (l *DailyChatLog) ExpireIdleCurrent(now time.Time, ttl time.Duration) {
	if l.CurrentSessionID == nil {
		return
	}
	s, ok := l.Sessions[*l.CurrentSessionID]
	if !ok || s.IdleSince(now, ttl) {
		l.CurrentSessionID = nil
	}
}

// Current returns the currently selected session, or nil.
func (l *DailyChatLog) Current() *ChatSession {
	if l.CurrentSessionID == nil {
		return nil
	}
	return l.Sessions[*l.CurrentSessionID]
}

// DeriveTitle builds a session title from its first user message, truncated
// to SessionTitleMaxLen runes with an ellipsis.
func DeriveTitle(question string) string {
	r := []rune(question)
	if len(r) <= SessionTitleMaxLen {
		return question
	}
	return string(r[:SessionTitleMaxLen]) + "…"
}

// ChatLogStore defines the interface for persisting one DailyChatLog per
// user. Get returns (nil, nil) when no decodable log is stored.
type ChatLogStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*DailyChatLog, error)
	Put(ctx context.Context, userID uuid.UUID, log *DailyChatLog) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
