package telegraminfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/telegram"
)

// RedisConversationStore keeps conversation state in Redis so an in-flight
// form survives a bot restart. One JSON blob per chat, TTL'd.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConversationStore creates a Redis-backed conversation store.
func NewRedisConversationStore(client *redis.Client, ttl time.Duration) telegram.ConversationStore {
	return &RedisConversationStore{
		client: client,
		ttl:    ttl,
	}
}

func key(chatID kernel.ChatID) string {
	return fmt.Sprintf("conversation:%s", chatID.String())
}

func (s *RedisConversationStore) Get(ctx context.Context, chatID kernel.ChatID) (*telegram.ConversationState, error) {
	data, err := s.client.Get(ctx, key(chatID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation state: %w", err)
	}

	var state telegram.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation state: %w", err)
	}

	return &state, nil
}

func (s *RedisConversationStore) Put(ctx context.Context, chatID kernel.ChatID, state *telegram.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}

	if err := s.client.Set(ctx, key(chatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store conversation state: %w", err)
	}

	return nil
}

func (s *RedisConversationStore) Clear(ctx context.Context, chatID kernel.ChatID) error {
	if err := s.client.Del(ctx, key(chatID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation state: %w", err)
	}
	return nil
}
