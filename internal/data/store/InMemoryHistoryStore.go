package store

import (
	"context"
	"sync"

	"github.com/anukol/sitechat/internal/domain/chatModel"
)

// InMemoryHistoryStore is the fallback when redis is offline. History then
// only lives for the process lifetime.
type InMemoryHistoryStore struct {
	mu    sync.RWMutex
	turns map[string][]chatModel.ConversationTurn
}

func InitInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{
		turns: make(map[string][]chatModel.ConversationTurn),
	}
}

func (s *InMemoryHistoryStore) Append(ctx context.Context, sessionID string, turn chatModel.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *InMemoryHistoryStore) Recent(ctx context.Context, sessionID string, n int) ([]chatModel.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.turns[sessionID]
	if len(all) <= n {
		return append([]chatModel.ConversationTurn(nil), all...), nil
	}
	return append([]chatModel.ConversationTurn(nil), all[len(all)-n:]...), nil
}
