package index

import (
	"context"
	"fmt"
	"time"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/metrics"
	"github.com/anukol/sitechat/internal/rag/chunker"
	"github.com/anukol/sitechat/internal/rag/embedding"
	"github.com/anukol/sitechat/internal/rag/vectorDB"
	"github.com/anukol/sitechat/pkg/logger_i"
	"golang.org/x/sync/singleflight"
)

const embedBatchSize = 100

// SiteSource is the crawl capability the index builds from.
type SiteSource interface {
	DiscoverLinks(ctx context.Context, rootURL string) ([]string, error)
	FetchDocuments(ctx context.Context, links []string) []siteModel.Document
}

// KnowledgeIndex owns the embed-and-store pipeline for the one allowed site.
// A populated collection is treated as a valid persisted index and is never
// re-crawled; staleness is accepted in exchange for not paying the crawl and
// embedding cost on every boot.
type KnowledgeIndex struct {
	source      SiteSource
	embedder    embedding.Embedder
	store       vectorDB.VectorStore
	splitCfg    chunker.Config
	allowedRoot string

	group  singleflight.Group
	logger *logger_i.Logger
}

func New(source SiteSource, em embedding.Embedder, store vectorDB.VectorStore) *KnowledgeIndex {
	return &KnowledgeIndex{
		source:      source,
		embedder:    em,
		store:       store,
		splitCfg:    chunker.DefaultConfig(),
		allowedRoot: config.AllowedRootURL,
		logger:      logger_i.NewLogger("KnowledgeIndex"),
	}
}

// LoadOrBuild makes sure the index is usable: if the collection already holds
// points it is loaded as-is, otherwise the site is crawled, chunked, embedded
// and stored. Concurrent callers racing on a cold index are collapsed to a
// single build.
func (ki *KnowledgeIndex) LoadOrBuild(ctx context.Context, rootURL string) error {
	if rootURL != ki.allowedRoot {
		return &chatModel.InvalidScopeError{URL: rootURL}
	}

	_, err, _ := ki.group.Do(config.KnowledgeCollection, func() (interface{}, error) {
		return nil, ki.loadOrBuildLocked(ctx, rootURL)
	})
	return err
}

func (ki *KnowledgeIndex) loadOrBuildLocked(ctx context.Context, rootURL string) error {
	log := ki.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if err := ki.store.EnsureCollection(ctx, config.KnowledgeCollection); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	count, err := ki.store.Count(ctx, config.KnowledgeCollection)
	if err != nil {
		return fmt.Errorf("counting points: %w", err)
	}
	if count > 0 {
		log.Info("Loaded existing knowledge index", "points", count)
		return nil
	}

	log.Info("No persisted index, building from site", "root", rootURL)
	start := time.Now()

	links, err := ki.source.DiscoverLinks(ctx, rootURL)
	if err != nil {
		return err
	}

	docs := ki.source.FetchDocuments(ctx, links)
	if len(docs) == 0 {
		log.Warn("Crawl produced no documents, index stays empty")
		return nil
	}

	chunks := chunker.SplitAll(docs, ki.splitCfg)
	log.Info("Chunked site content", "documents", len(docs), "chunks", len(chunks))

	if err := ki.embedAndStore(ctx, chunks); err != nil {
		return err
	}

	metrics.IncrementIndexBuilds()
	log.Info("Knowledge index built", "elapsed", time.Since(start))
	return nil
}

func (ki *KnowledgeIndex) embedAndStore(ctx context.Context, chunks []siteModel.Chunk) error {
	for i := 0; i < len(chunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, 0, len(batch))
		for _, c := range batch {
			texts = append(texts, c.Text)
		}

		vectors, err := ki.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		if err := ki.store.UpsertChunks(ctx, config.KnowledgeCollection, batch, vectors); err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
	}
	return nil
}

// Query embeds the text and returns up to k nearest chunks. An empty index
// yields an empty result, not an error.
func (ki *KnowledgeIndex) Query(ctx context.Context, text string, k int) ([]siteModel.ScoredChunk, error) {
	count, err := ki.store.Count(ctx, config.KnowledgeCollection)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	vector, err := ki.embedder.GetEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()
	return ki.store.Query(ctx, vector, k)
}
