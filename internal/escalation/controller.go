package escalation

import (
	"context"
	"strings"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/domain/siteModel"
	"github.com/anukol/sitechat/internal/metrics"
	"github.com/anukol/sitechat/internal/session"
	"github.com/anukol/sitechat/pkg/logger_i"
)

// Retriever fetches relevant chunks for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]siteModel.ScoredChunk, error)
}

// Generator produces a tagged answer from retrieved context.
type Generator interface {
	Generate(ctx context.Context, question string, chunks []siteModel.ScoredChunk, history []chatModel.ConversationTurn) chatModel.AnswerResult
}

// Researcher is the consent-gated fallback. It always returns text.
type Researcher interface {
	Run(ctx context.Context, question string) string
}

// AnswerCache short-circuits near-identical repeat questions. Optional.
type AnswerCache interface {
	CachedAnswer(ctx context.Context, question string) (string, bool)
	CacheAnswer(ctx context.Context, question string, answer string)
}

// Controller is the two-state machine between local answering and the
// research fallback. NORMAL routes questions through retrieve-then-generate;
// an insufficient answer parks the session in AWAITING_CONSENT until a
// recognized yes/no arrives. The fallback is expensive, so it only ever runs
// on an explicit affirmative.
type Controller struct {
	retriever  Retriever
	generator  Generator
	researcher Researcher
	cache      AnswerCache
	history    chatModel.HistoryStore
	logger     *logger_i.Logger
}

func NewController(r Retriever, g Generator, res Researcher, history chatModel.HistoryStore) *Controller {
	return &Controller{
		retriever:  r,
		generator:  g,
		researcher: res,
		history:    history,
		logger:     logger_i.NewLogger("EscalationController"),
	}
}

// WithCache enables the semantic answer cache.
func (c *Controller) WithCache(cache AnswerCache) *Controller {
	c.cache = cache
	return c
}

// HandleQuestion processes one input for a session whose lock is held by the
// caller. An input arriving while consent is pending is treated as the
// consent reply, whichever endpoint delivered it.
func (c *Controller) HandleQuestion(ctx context.Context, state *session.State, question string) string {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session", state.ID)

	if _, pending := state.Pending(); pending {
		return c.resolveConsent(ctx, state, question)
	}

	if containsURL(question) {
		log.Warn("Rejected question embedding a URL")
		return ScopeRefusalMessage
	}

	history := c.recentHistory(ctx, state.ID)
	c.appendTurn(ctx, state.ID, chatModel.RoleUser, question)

	if c.cache != nil {
		if cached, found := c.cache.CachedAnswer(ctx, question); found {
			c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, cached)
			return cached
		}
	}

	chunks, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		log.Error("Retrieval failed", "error", err)
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, DegradedMessage)
		return DegradedMessage
	}

	result := c.generator.Generate(ctx, question, chunks, history)
	switch result.Kind {
	case chatModel.AnswerAnswered:
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, result.Text)
		if c.cache != nil {
			go c.cache.CacheAnswer(context.WithoutCancel(ctx), question, result.Text)
		}
		return result.Text

	case chatModel.AnswerInsufficient:
		log.Info("Answer insufficient, asking for consent to escalate")
		metrics.CountEscalation("prompted")
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, ConsentPromptMessage)
		state.SetPending(question)
		return ConsentPromptMessage

	default: // AnswerFailed
		log.Error("Generation failed", "error", result.Reason)
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, DegradedMessage)
		return DegradedMessage
	}
}

// HandleConsent drives the AWAITING_CONSENT transition explicitly.
func (c *Controller) HandleConsent(ctx context.Context, state *session.State, reply string) string {
	if _, pending := state.Pending(); !pending {
		return NoPendingConsentMessage
	}
	return c.resolveConsent(ctx, state, reply)
}

func (c *Controller) resolveConsent(ctx context.Context, state *session.State, reply string) string {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session", state.ID)

	switch ClassifyIntent(reply) {
	case IntentAffirm:
		question, _ := state.Pending()
		state.ClearPending()
		metrics.CountEscalation("affirmed")
		log.Info("User consented, running research fallback")

		c.appendTurn(ctx, state.ID, chatModel.RoleUser, reply)
		answerText := c.researcher.Run(ctx, question)
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, answerText)
		return answerText

	case IntentDecline:
		state.ClearPending()
		metrics.CountEscalation("declined")
		log.Info("User declined escalation")

		c.appendTurn(ctx, state.ID, chatModel.RoleUser, reply)
		c.appendTurn(ctx, state.ID, chatModel.RoleAssistant, DeclineAckMessage)
		return DeclineAckMessage

	default:
		// Trap state: anything unrecognized keeps consent pending.
		metrics.CountEscalation("reprompted")
		log.Debug("Unrecognized consent reply, re-prompting")
		return RePromptMessage
	}
}

func (c *Controller) recentHistory(ctx context.Context, sessionID string) []chatModel.ConversationTurn {
	history, err := c.history.Recent(ctx, sessionID, config.HistoryWindow)
	if err != nil {
		c.logger.Error("Failed to load history", "session", sessionID, "error", err)
		return nil
	}
	return history
}

func (c *Controller) appendTurn(ctx context.Context, sessionID string, role chatModel.Role, content string) {
	turn := chatModel.ConversationTurn{Role: role, Content: content}
	if err := c.history.Append(ctx, sessionID, turn); err != nil {
		c.logger.Error("Failed to append turn", "session", sessionID, "error", err)
	}
}

func containsURL(question string) bool {
	lowered := strings.ToLower(question)
	return strings.Contains(lowered, "http://") || strings.Contains(lowered, "https://")
}
