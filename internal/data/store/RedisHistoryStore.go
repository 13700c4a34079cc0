package store

import (
	"context"
	"encoding/json"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/data/redisStore"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/pkg/logger_i"
)

type RedisHistoryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisHistoryStore(ctx context.Context) *RedisHistoryStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisHistoryStore)
	if inner == nil {
		return nil
	}
	return &RedisHistoryStore{
		store:  inner,
		logger: logger_i.NewLogger("HistoryStore"),
	}
}

func (s *RedisHistoryStore) Append(ctx context.Context, sessionID string, turn chatModel.ConversationTurn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session", sessionID)

	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	if err := s.store.ListPush(ctx, sessionID, data); err != nil {
		log.Error("error saving turn", "error:", err)
		return err
	}
	if err := s.store.Expire(ctx, sessionID, config.RedisHistoryTTL); err != nil {
		log.Error("error refreshing TTL", "error:", err)
	}
	log.Debug("Saved turn")
	return nil
}

func (s *RedisHistoryStore) Recent(ctx context.Context, sessionID string, n int) ([]chatModel.ConversationTurn, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session", sessionID)

	raw, err := s.store.ListRecent(ctx, sessionID, n)
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}

	turns := make([]chatModel.ConversationTurn, 0, len(raw))
	for _, entry := range raw {
		var turn chatModel.ConversationTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			log.Error("Skipping malformed history entry", "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func TestHistoryStore(store *redisStore.Store) *RedisHistoryStore {
	return &RedisHistoryStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
