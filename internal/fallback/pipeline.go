package fallback

import (
	"context"
	"fmt"
	"time"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/metrics"
	"github.com/anukol/sitechat/pkg/logger_i"
)

// DegradedResponse is returned whenever the pipeline cannot produce a real
// answer. The fallback is best-effort: it never propagates a failure.
const DegradedResponse = "Here is the fetched external information at the moment."

const researcherPrompt = "You are a travel itinerary researcher. Research and extract valuable " +
	"insights about the topic, focusing on destinations, day-wise activities, accommodations, " +
	"and practical tips. Present detailed recommendations for must-visit places and activities."

const writerPrompt = "You are a travel itinerary writer. Using the research findings you are " +
	"given, craft a structured, detailed and engaging day-by-day itinerary, including " +
	"must-visit destinations, activities, transportation options and accommodation recommendations."

// Completer is the single-call generation capability both stages run on.
type Completer interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

// Pipeline is the consent-gated research fallback: a research stage feeding a
// writing stage, both against an open-ended model rather than the site index.
type Pipeline struct {
	completer Completer
	logger    *logger_i.Logger
}

func NewPipeline(completer Completer) *Pipeline {
	return &Pipeline{
		completer: completer,
		logger:    logger_i.NewLogger("FallbackPipeline"),
	}
}

// Run executes research then writing for the remembered question. Any failure
// at any stage degrades to a fixed response string - callers always get text.
func (p *Pipeline) Run(ctx context.Context, question string) string {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	runCtx, cancel := context.WithTimeout(ctx, config.FallbackTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("fallback", time.Since(start)) }()

	if p.completer == nil {
		log.Error("Fallback capability unavailable")
		metrics.CountFallbackRun("degraded")
		return DegradedResponse
	}

	findings, err := p.completer.Complete(runCtx, researcherPrompt,
		fmt.Sprintf("Gather travel insights for: %s", question))
	if err != nil || findings == "" {
		log.Error("Research stage failed", "error", err)
		metrics.CountFallbackRun("degraded")
		return DegradedResponse
	}

	itinerary, err := p.completer.Complete(runCtx, writerPrompt,
		fmt.Sprintf("Question: %s\n\nResearch findings:\n%s", question, findings))
	if err != nil || itinerary == "" {
		log.Error("Writing stage failed", "error", err)
		metrics.CountFallbackRun("degraded")
		return DegradedResponse
	}

	metrics.CountFallbackRun("ok")
	return itinerary
}
