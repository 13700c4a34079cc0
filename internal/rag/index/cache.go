package index

import (
	"context"

	"github.com/google/uuid"
)

// CachedAnswer checks the semantic answer cache for a near-identical earlier
// question. Misses and cache errors both report "not found" - the cache is an
// optimization, never a dependency.
func (ki *KnowledgeIndex) CachedAnswer(ctx context.Context, question string) (string, bool) {
	vector, err := ki.embedder.GetEmbedding(ctx, question)
	if err != nil {
		ki.logger.Error("Cache lookup embedding failed", "error", err)
		return "", false
	}

	answer, found, err := ki.store.GetCachedAnswer(ctx, vector)
	if err != nil {
		ki.logger.Error("Cache lookup failed", "error", err)
		return "", false
	}
	return answer, found
}

// CacheAnswer stores a freshly generated answer keyed by the question's
// embedding. Best-effort: failures are logged and dropped.
func (ki *KnowledgeIndex) CacheAnswer(ctx context.Context, question string, answer string) {
	vector, err := ki.embedder.GetEmbedding(ctx, question)
	if err != nil {
		ki.logger.Error("Cache save embedding failed", "error", err)
		return
	}
	if err := ki.store.SaveToCache(ctx, uuid.New().String(), vector, answer); err != nil {
		ki.logger.Error("Cache save failed", "error", err)
	}
}
