package llm

import (
	"context"

	"github.com/anukol/sitechat/internal/domain/chatModel"
)

type Provider interface {
	Generate(ctx context.Context, question string, matches []string, history []chatModel.ConversationTurn) (string, error)
}
