package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// handleTTL bounds how long a conversation can be resumed by replying to the
// bot's message. After expiry the next reply starts a fresh context.
const handleTTL = 24 * time.Hour

// Redis keeps provider continuation handles. The backend is best-effort: a
// bad URL, an unreachable server or any command error all degrade to "no
// continuation" instead of surfacing to the reply path.
type Redis struct {
	client *redis.Client
}

func NewRedis(url string) *Redis {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn().Err(err).Msg("invalid redis URL, conversation continuation disabled")
		return &Redis{}
	}

	return &Redis{client: redis.NewClient(opt)}
}

func (s *Redis) Get(ctx context.Context, chatID int64, messageID int) (string, bool) {
	if s.client == nil {
		return "", false
	}

	handle, err := s.client.Get(ctx, key(chatID, messageID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Warn().Err(err).Int64("chatId", chatID).Int("messageId", messageID).
			Msg("failed to read continuation handle")
		return "", false
	}

	return handle, true
}

func (s *Redis) Set(ctx context.Context, chatID int64, messageID int, handle string) {
	if s.client == nil {
		return
	}

	err := s.client.Set(ctx, key(chatID, messageID), handle, handleTTL).Err()
	if err != nil {
		log.Warn().Err(err).Int64("chatId", chatID).Int("messageId", messageID).
			Msg("failed to store continuation handle")
	}
}

func key(chatID int64, messageID int) string {
	return fmt.Sprintf("chain:%d:%d", chatID, messageID)
}
