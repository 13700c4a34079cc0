package index_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/rag/index"
)

// MockSource implements index.SiteSource
type MockSource struct {
	DiscoverCalls int32
	OnDiscover    func(ctx context.Context, rootURL string) ([]string, error)
	OnFetch       func(ctx context.Context, links []string) []siteModel.Document
}

func (m *MockSource) DiscoverLinks(ctx context.Context, rootURL string) ([]string, error) {
	atomic.AddInt32(&m.DiscoverCalls, 1)
	if m.OnDiscover != nil {
		return m.OnDiscover(ctx, rootURL)
	}
	return []string{rootURL}, nil
}

func (m *MockSource) FetchDocuments(ctx context.Context, links []string) []siteModel.Document {
	if m.OnFetch != nil {
		return m.OnFetch(ctx, links)
	}
	docs := make([]siteModel.Document, 0, len(links))
	for _, link := range links {
		docs = append(docs, siteModel.Document{SourceURL: link, RawText: "page content about travel and food"})
	}
	return docs
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	BatchCalls int32
	OnBatch    func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	atomic.AddInt32(&m.BatchCalls, 1)
	if m.OnBatch != nil {
		return m.OnBatch(ctx, texts)
	}
	return make([][]float32, len(texts)), nil
}

// MockVectorStore implements vectorDB.VectorStore
type MockVectorStore struct {
	mu     sync.Mutex
	points uint64

	OnEnsure func(ctx context.Context, name string) error
	OnCount  func(ctx context.Context, name string) (uint64, error)
	OnUpsert func(ctx context.Context, name string, chunks []siteModel.Chunk, vectors [][]float32) error
	OnQuery  func(ctx context.Context, vector []float32, k int) ([]siteModel.ScoredChunk, error)
}

func (m *MockVectorStore) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsure != nil {
		return m.OnEnsure(ctx, name)
	}
	return nil
}

func (m *MockVectorStore) Count(ctx context.Context, name string) (uint64, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.points, nil
}

func (m *MockVectorStore) UpsertChunks(ctx context.Context, name string, chunks []siteModel.Chunk, vectors [][]float32) error {
	if m.OnUpsert != nil {
		return m.OnUpsert(ctx, name, chunks, vectors)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points += uint64(len(chunks))
	return nil
}

func (m *MockVectorStore) Query(ctx context.Context, vector []float32, k int) ([]siteModel.ScoredChunk, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, vector, k)
	}
	return nil, nil
}

func (m *MockVectorStore) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	return "", false, nil
}

func (m *MockVectorStore) SaveToCache(ctx context.Context, id string, vector []float32, answer string) error {
	return nil
}

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "index-trace")
}

func TestLoadOrBuild_RejectsForeignRoot(t *testing.T) {
	ki := index.New(&MockSource{}, &MockEmbedder{}, &MockVectorStore{})

	err := ki.LoadOrBuild(testContext(), "https://other-site.example/")

	var scopeErr *chatModel.InvalidScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("Error got %v, want InvalidScopeError", err)
	}
}

func TestLoadOrBuild_SkipsBuildWhenPopulated(t *testing.T) {
	source := &MockSource{}
	store := &MockVectorStore{points: 42}
	ki := index.New(source, &MockEmbedder{}, store)

	if err := ki.LoadOrBuild(testContext(), config.AllowedRootURL); err != nil {
		t.Fatalf("LoadOrBuild failed: %v", err)
	}
	if source.DiscoverCalls != 0 {
		t.Errorf("Populated index must not re-crawl, got %d discover calls", source.DiscoverCalls)
	}
}

func TestLoadOrBuild_BuildsOnceWhenEmpty(t *testing.T) {
	source := &MockSource{}
	embedder := &MockEmbedder{}
	store := &MockVectorStore{}
	ki := index.New(source, embedder, store)

	if err := ki.LoadOrBuild(testContext(), config.AllowedRootURL); err != nil {
		t.Fatalf("First LoadOrBuild failed: %v", err)
	}
	if embedder.BatchCalls == 0 {
		t.Fatal("Empty index must trigger an embed-and-store build")
	}

	// Second call sees the populated store and does nothing.
	before := embedder.BatchCalls
	if err := ki.LoadOrBuild(testContext(), config.AllowedRootURL); err != nil {
		t.Fatalf("Second LoadOrBuild failed: %v", err)
	}
	if embedder.BatchCalls != before {
		t.Errorf("Rebuild happened, batch calls went %d -> %d", before, embedder.BatchCalls)
	}
}

func TestLoadOrBuild_ConcurrentCallersShareOneBuild(t *testing.T) {
	source := &MockSource{
		OnDiscover: func(ctx context.Context, rootURL string) ([]string, error) {
			time.Sleep(20 * time.Millisecond) //let callers pile up
			return []string{rootURL}, nil
		},
	}
	store := &MockVectorStore{}
	ki := index.New(source, &MockEmbedder{}, store)

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ki.LoadOrBuild(testContext(), config.AllowedRootURL); err != nil {
				t.Errorf("LoadOrBuild failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls := atomic.LoadInt32(&source.DiscoverCalls); calls != 1 {
		t.Errorf("Discover calls got %d, want 1", calls)
	}
}

func TestLoadOrBuild_EmptyCrawlLeavesIndexEmpty(t *testing.T) {
	source := &MockSource{
		OnFetch: func(ctx context.Context, links []string) []siteModel.Document {
			return nil
		},
	}
	embedder := &MockEmbedder{}
	ki := index.New(source, embedder, &MockVectorStore{})

	if err := ki.LoadOrBuild(testContext(), config.AllowedRootURL); err != nil {
		t.Fatalf("LoadOrBuild failed: %v", err)
	}
	if embedder.BatchCalls != 0 {
		t.Errorf("Nothing to embed, got %d batch calls", embedder.BatchCalls)
	}
}

func TestQuery_EmptyIndexReturnsNothing(t *testing.T) {
	queried := false
	store := &MockVectorStore{
		OnQuery: func(ctx context.Context, vector []float32, k int) ([]siteModel.ScoredChunk, error) {
			queried = true
			return nil, nil
		},
	}
	ki := index.New(&MockSource{}, &MockEmbedder{}, store)

	chunks, err := ki.Query(testContext(), "anything", config.RetrievalK)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(chunks) != 0 || queried {
		t.Errorf("Empty index must answer without searching, got %d chunks, searched=%v", len(chunks), queried)
	}
}

func TestQuery_ReturnsStoreMatches(t *testing.T) {
	want := []siteModel.ScoredChunk{
		{Chunk: siteModel.Chunk{Text: "ramen", SourceURL: "https://www.travellofoodie.com/ramen"}, Score: 0.9},
	}
	store := &MockVectorStore{points: 10}
	store.OnQuery = func(ctx context.Context, vector []float32, k int) ([]siteModel.ScoredChunk, error) {
		if k != config.RetrievalK {
			t.Errorf("k got %d, want %d", k, config.RetrievalK)
		}
		return want, nil
	}
	ki := index.New(&MockSource{}, &MockEmbedder{}, store)

	chunks, err := ki.Query(testContext(), "ramen", config.RetrievalK)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "ramen" {
		t.Errorf("Chunks got %+v, want the store match", chunks)
	}
}
