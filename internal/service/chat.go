package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dkellner/daybook/internal/assistant"
	"github.com/dkellner/daybook/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// PlaceholderAnswer is the transient assistant message shown while a
	// reply is pending.
	PlaceholderAnswer = "Searching through your notes..."

	// FailureAnswer replaces the placeholder when the assistant call
	// fails. The user's message stays in the transcript.
	FailureAnswer = "Sorry, there was an error processing your question."
)

// SendResult reports the outcome of sending a message.
type SendResult struct {
	Session         *domain.ChatSession `json:"session"`
	Answer          string              `json:"answer"`
	AssistantFailed bool                `json:"assistant_failed"`
}

// ChatService manages a user's day-scoped chat sessions and forwards
// questions to the assistant with the user's notes as context.
type ChatService struct {
	store     domain.ChatLogStore
	noteRepo  domain.NoteRepository
	providers *assistant.Router
	idleTTL   time.Duration
	maxTokens int
	now       func() time.Time
}

// NewChatService creates a new chat service
func NewChatService(
	store domain.ChatLogStore,
	noteRepo domain.NoteRepository,
	providers *assistant.Router,
	idleTTL time.Duration,
	maxTokens int,
) *ChatService {
	return &ChatService{
		store:     store,
		noteRepo:  noteRepo,
		providers: providers,
		idleTTL:   idleTTL,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// Open returns today's chat log after applying the rollover and idle-expiry
// rules: a stored log for a different day (or an unknown shape) is discarded
// wholesale, and a current session idle past the threshold is demoted to
// "no active session" rather than auto-resumed.
func (s *ChatService) Open(ctx context.Context, userID uuid.UUID) (*domain.DailyChatLog, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	chatLog, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, userID, chatLog); err != nil {
		return nil, err
	}
	return chatLog, nil
}

// StartNew clears the current-session pointer. No session object is created
// until a message is actually sent.
func (s *ChatService) StartNew(ctx context.Context, userID uuid.UUID) (*domain.DailyChatLog, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	chatLog, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	chatLog.CurrentSessionID = nil
	if err := s.store.Put(ctx, userID, chatLog); err != nil {
		return nil, err
	}
	return chatLog, nil
}

// Send appends the question to the current session (creating one lazily when
// none is selected), asks the assistant with the session's prior turns and
// every note of the user as context, and resolves the placeholder reply in
// place. An assistant failure is reported in the result, not as an error;
// the user's message is never rolled back.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, question, providerName, model string) (*SendResult, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	chatLog, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := chatLog.Current()
	if session == nil {
		session = &domain.ChatSession{
			ID:           uuid.New(),
			Messages:     []domain.Message{},
			CreatedAt:    now,
			LastActiveAt: now,
		}
		chatLog.Sessions[session.ID] = session
		chatLog.CurrentSessionID = &session.ID
	}

	// History forwarded to the assistant is the transcript before this
	// exchange; for a fresh session it is empty.
	history := make([]domain.Message, len(session.Messages))
	copy(history, session.Messages)

	if session.Title == "" {
		session.Title = domain.DeriveTitle(question)
	}

	session.Messages = append(session.Messages,
		domain.Message{Role: domain.RoleUser, Content: question, CreatedAt: now},
		domain.Message{Role: domain.RoleAssistant, Content: PlaceholderAnswer, CreatedAt: now},
	)
	placeholderIdx := len(session.Messages) - 1
	session.LastActiveAt = now

	if err := s.store.Put(ctx, userID, chatLog); err != nil {
		return nil, err
	}

	answer, failed := s.answer(ctx, userID, history, question, providerName, model)

	// Replace the placeholder in place; indices before it are untouched.
	session.Messages[placeholderIdx].Content = answer
	session.Messages[placeholderIdx].CreatedAt = s.now()
	session.LastActiveAt = s.now()

	if err := s.store.Put(ctx, userID, chatLog); err != nil {
		return nil, err
	}

	return &SendResult{
		Session:         session,
		Answer:          answer,
		AssistantFailed: failed,
	}, nil
}

// DeleteSession removes a session from today's log. Deleting the current
// session leaves no session selected.
func (s *ChatService) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.DailyChatLog, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	chatLog, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := chatLog.Sessions[sessionID]; !ok {
		return nil, domain.ErrSessionNotFound
	}
	delete(chatLog.Sessions, sessionID)
	if chatLog.CurrentSessionID != nil && *chatLog.CurrentSessionID == sessionID {
		chatLog.CurrentSessionID = nil
	}

	if err := s.store.Put(ctx, userID, chatLog); err != nil {
		return nil, err
	}
	return chatLog, nil
}

// load fetches the stored log and normalizes it for today: version or date
// mismatch reinitializes it empty, and an idle current session is demoted.
func (s *ChatService) load(ctx context.Context, userID uuid.UUID) (*domain.DailyChatLog, error) {
	chatLog, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat log: %w", err)
	}

	today := domain.Today(s.now())
	if !chatLog.ValidFor(today) {
		chatLog = domain.NewDailyChatLog(today)
	}
	chatLog.ExpireIdleCurrent(s.now(), s.idleTTL)
	return chatLog, nil
}

// answer fetches the user's notes and asks the configured provider. Any
// failure downgrades to the canned failure reply.
func (s *ChatService) answer(ctx context.Context, userID uuid.UUID, history []domain.Message, question, providerName, model string) (string, bool) {
	notes, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load notes for assistant context")
		return FailureAnswer, true
	}
	if len(notes) == 0 {
		return assistant.EmptyNotesAnswer, false
	}

	provider, err := s.providers.GetProvider(providerName)
	if err != nil {
		log.Error().Err(err).Str("provider", providerName).Msg("assistant provider unavailable")
		return FailureAnswer, true
	}

	resp, err := provider.Answer(ctx, assistant.Request{
		Notes:     notes,
		History:   history,
		Question:  question,
		MaxTokens: s.maxTokens,
	}, model)
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("assistant call failed")
		return FailureAnswer, true
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int("tokens_used", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("assistant response received")

	return resp.Answer, false
}
