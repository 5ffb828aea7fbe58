package assistant

import (
	"context"

	"github.com/dkellner/daybook/internal/domain"
)

// Request contains everything a provider needs to answer a question grounded
// in the user's notes: the full note set as context, the prior turns of the
// active session, and the new question.
type Request struct {
	Notes     []domain.Note
	History   []domain.Message
	Question  string
	MaxTokens int
}

// Message is one turn in provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response contains the assistant's answer
type Response struct {
	Answer     string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for assistant backends
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Answer responds to the question using the notes and history in req
	Answer(ctx context.Context, req Request, model string) (*Response, error)
}
