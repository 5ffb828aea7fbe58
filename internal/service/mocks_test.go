package service

import (
	"context"

	"github.com/dkellner/daybook/internal/assistant"
	"github.com/dkellner/daybook/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNoteRepository mocks the NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Upsert(ctx context.Context, userID uuid.UUID, date, content string) (*domain.Note, error) {
	args := m.Called(ctx, userID, date, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

func (m *MockNoteRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.Note, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockNoteRepository) SearchByUser(ctx context.Context, userID uuid.UUID, query string) ([]domain.Note, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

// MockProvider mocks the assistant.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) AvailableModels() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockProvider) DefaultModel() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockProvider) Answer(ctx context.Context, req assistant.Request, model string) (*assistant.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Response), args.Error(1)
}

// memChatLogStore is an in-memory ChatLogStore for chat service tests.
type memChatLogStore struct {
	logs map[uuid.UUID]*domain.DailyChatLog
}

func newMemChatLogStore() *memChatLogStore {
	return &memChatLogStore{logs: make(map[uuid.UUID]*domain.DailyChatLog)}
}

func (s *memChatLogStore) Get(ctx context.Context, userID uuid.UUID) (*domain.DailyChatLog, error) {
	return s.logs[userID], nil
}

func (s *memChatLogStore) Put(ctx context.Context, userID uuid.UUID, log *domain.DailyChatLog) error {
	s.logs[userID] = log
	return nil
}

func (s *memChatLogStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(s.logs, userID)
	return nil
}
