package vectorDB

import (
	"context"

	"github.com/anukol/sitechat/internal/domain/siteModel"
)

type VectorStore interface {
	Query(ctx context.Context, vector []float32, k int) ([]siteModel.ScoredChunk, error)

	// index build path
	EnsureCollection(ctx context.Context, collectionName string) error
	Count(ctx context.Context, collectionName string) (uint64, error)
	UpsertChunks(ctx context.Context, collectionName string, chunks []siteModel.Chunk, vectors [][]float32) error

	// semantic answer cache
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error
}
