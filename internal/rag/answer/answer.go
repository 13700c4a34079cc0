package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/metrics"
	"github.com/anukol/sitechat/internal/rag/llm"
	"github.com/anukol/sitechat/pkg/logger_i"
)

// Generator turns retrieved chunks plus history into a tagged AnswerResult.
// The provider is told to answer only from the supplied context and to emit a
// fixed refusal phrase when it cannot; both the refusal phrase and a blank
// response classify as Insufficient.
type Generator struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger_i.NewLogger("AnswerGenerator"),
	}
}

func (g *Generator) Generate(ctx context.Context, question string, chunks []siteModel.ScoredChunk, history []chatModel.ConversationTurn) chatModel.AnswerResult {
	log := g.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	genCtx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	matches := contextWindow(chunks)

	start := time.Now()
	text, err := g.provider.Generate(genCtx, question, matches, history)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))

	result := classify(text, err)
	metrics.CountAnswerResult(string(result.Kind))

	switch result.Kind {
	case chatModel.AnswerFailed:
		log.Error("Generation failed", "error", result.Reason)
	case chatModel.AnswerInsufficient:
		log.Info("Context was insufficient for question")
	default:
		result.Sources = sourceURLs(chunks)
	}
	return result
}

// contextWindow concatenates chunk texts with provenance. No deduplication:
// overlapping chunks can repeat boundary text.
func contextWindow(chunks []siteModel.ScoredChunk) []string {
	matches := make([]string, 0, len(chunks))
	for _, c := range chunks {
		matches = append(matches, fmt.Sprintf("Content: %s\nSource: %s", c.Text, c.SourceURL))
	}
	return matches
}

func classify(text string, err error) chatModel.AnswerResult {
	if err != nil {
		return chatModel.Failed(&chatModel.GenerationFailure{Stage: "answer", Err: err})
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.Contains(trimmed, config.RefusalPhrase) {
		return chatModel.Insufficient()
	}
	return chatModel.Answered(trimmed, nil)
}

func sourceURLs(chunks []siteModel.ScoredChunk) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, c := range chunks {
		if _, ok := seen[c.SourceURL]; ok {
			continue
		}
		seen[c.SourceURL] = struct{}{}
		sources = append(sources, c.SourceURL)
	}
	return sources
}
