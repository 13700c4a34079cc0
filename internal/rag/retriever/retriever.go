package retriever

import (
	"context"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/rag/index"
)

// Retriever fixes the one retrieval policy knob: how many chunks come back.
// Single-shot dense similarity search, no rewriting, no hybrid scoring.
type Retriever struct {
	index *index.KnowledgeIndex
	k     int
}

func New(ki *index.KnowledgeIndex) *Retriever {
	return &Retriever{index: ki, k: config.RetrievalK}
}

func (r *Retriever) Retrieve(ctx context.Context, question string) ([]siteModel.ScoredChunk, error) {
	return r.index.Query(ctx, question, r.k)
}
