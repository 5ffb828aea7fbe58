package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/dkellner/daybook/internal/domain"
	"github.com/dkellner/daybook/internal/security"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const chatLogPrefix = "chatlog:"

// ChatLogStore keeps one DailyChatLog per user in Redis, AES-GCM encrypted
// at rest. A payload that fails to decrypt or decode is treated as absent so
// the service layer reinitializes an empty log instead of erroring.
type ChatLogStore struct {
	client    *Client
	encryptor *security.Encryptor
	ttl       time.Duration
}

// NewChatLogStore creates a new chat log store
func NewChatLogStore(client *Client, encryptor *security.Encryptor, ttl time.Duration) *ChatLogStore {
	return &ChatLogStore{
		client:    client,
		encryptor: encryptor,
		ttl:       ttl,
	}
}

// Get retrieves the stored chat log for a user. Returns (nil, nil) when no
// usable log is stored.
func (s *ChatLogStore) Get(ctx context.Context, userID uuid.UUID) (*domain.DailyChatLog, error) {
	key := chatLogPrefix + userID.String()

	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read chat log: %w", err)
	}

	var chatLog domain.DailyChatLog
	if err := s.encryptor.DecryptJSON(data, &chatLog); err != nil {
		// Undecodable payload: discard rather than fail the request.
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("discarding undecodable chat log")
		return nil, nil
	}

	return &chatLog, nil
}

// Put stores the chat log for a user.
func (s *ChatLogStore) Put(ctx context.Context, userID uuid.UUID, chatLog *domain.DailyChatLog) error {
	key := chatLogPrefix + userID.String()

	data, err := s.encryptor.EncryptJSON(chatLog)
	if err != nil {
		return fmt.Errorf("failed to encrypt chat log: %w", err)
	}

	if err := s.client.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write chat log: %w", err)
	}
	return nil
}

// Delete removes the stored chat log for a user.
func (s *ChatLogStore) Delete(ctx context.Context, userID uuid.UUID) error {
	key := chatLogPrefix + userID.String()
	if err := s.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete chat log: %w", err)
	}
	return nil
}
