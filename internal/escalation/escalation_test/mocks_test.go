package escalation_test

import (
	"context"

	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
)

// MockRetriever implements escalation.Retriever
type MockRetriever struct {
	Calls      int
	OnRetrieve func(ctx context.Context, question string) ([]siteModel.ScoredChunk, error)
}

func (m *MockRetriever) Retrieve(ctx context.Context, question string) ([]siteModel.ScoredChunk, error) {
	m.Calls++
	if m.OnRetrieve != nil {
		return m.OnRetrieve(ctx, question)
	}
	return nil, nil
}

// MockGenerator implements escalation.Generator
type MockGenerator struct {
	Calls      int
	OnGenerate func(ctx context.Context, question string, chunks []siteModel.ScoredChunk, history []chatModel.ConversationTurn) chatModel.AnswerResult
}

func (m *MockGenerator) Generate(ctx context.Context, question string, chunks []siteModel.ScoredChunk, history []chatModel.ConversationTurn) chatModel.AnswerResult {
	m.Calls++
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, chunks, history)
	}
	return chatModel.Answered("mock answer", nil)
}

// MockResearcher implements escalation.Researcher
type MockResearcher struct {
	Calls     int
	Questions []string
	OnRun     func(ctx context.Context, question string) string
}

func (m *MockResearcher) Run(ctx context.Context, question string) string {
	m.Calls++
	m.Questions = append(m.Questions, question)
	if m.OnRun != nil {
		return m.OnRun(ctx, question)
	}
	return "researched answer"
}

// MockCache implements escalation.AnswerCache
type MockCache struct {
	OnCachedAnswer func(ctx context.Context, question string) (string, bool)
	Saved          chan string
}

func (m *MockCache) CachedAnswer(ctx context.Context, question string) (string, bool) {
	if m.OnCachedAnswer != nil {
		return m.OnCachedAnswer(ctx, question)
	}
	return "", false
}

func (m *MockCache) CacheAnswer(ctx context.Context, question string, answer string) {
	if m.Saved != nil {
		m.Saved <- answer
	}
}
