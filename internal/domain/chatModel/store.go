package chatModel

import "context"

// HistoryStore persists the per-session conversation. Turns are append-only
// and kept in strict arrival order.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, turn ConversationTurn) error
	Recent(ctx context.Context, sessionID string, n int) ([]ConversationTurn, error)
}
