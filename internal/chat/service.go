package chat

import (
	"context"
	"sync"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/escalation"
	"github.com/anukol/sitechat/internal/rag/index"
	"github.com/anukol/sitechat/internal/session"
	"github.com/anukol/sitechat/pkg/logger_i"
)

// LinkSource lists the same-domain links of a root page.
type LinkSource interface {
	DiscoverLinks(ctx context.Context, rootURL string) ([]string, error)
}

// Service is the public contract both the HTTP handlers and the MCP tools
// call. Answers are always plain text so the response shape stays uniform.
type Service interface {
	Ask(ctx context.Context, sessionID string, question string) string
	Consent(ctx context.Context, sessionID string, reply string) string
	Links(ctx context.Context) ([]string, error)
}

type service struct {
	sessions   *session.Manager
	controller *escalation.Controller
	index      *index.KnowledgeIndex
	links      LinkSource
	logger     *logger_i.Logger

	indexMu    sync.Mutex
	indexReady bool
}

func NewService(sessions *session.Manager, controller *escalation.Controller, ki *index.KnowledgeIndex, links LinkSource) Service {
	return &service{
		sessions:   sessions,
		controller: controller,
		index:      ki,
		links:      links,
		logger:     logger_i.NewLogger("ChatService"),
	}
}

func (s *service) Ask(ctx context.Context, sessionID string, question string) string {
	state := s.sessions.Get(sessionID)
	state.Lock()
	defer state.Unlock()

	// Consent replies never need the index; everything else does.
	if _, pending := state.Pending(); !pending {
		if err := s.ensureIndex(ctx); err != nil {
			s.logger.Error("Knowledge index unavailable", "error", err)
			return escalation.DegradedMessage
		}
	}

	return s.controller.HandleQuestion(ctx, state, question)
}

func (s *service) Consent(ctx context.Context, sessionID string, reply string) string {
	state := s.sessions.Get(sessionID)
	state.Lock()
	defer state.Unlock()

	return s.controller.HandleConsent(ctx, state, reply)
}

func (s *service) Links(ctx context.Context) ([]string, error) {
	return s.links.DiscoverLinks(ctx, config.AllowedRootURL)
}

// ensureIndex lazily initializes the knowledge index exactly once per
// process. The index build itself collapses concurrent callers, so this flag
// only skips the load check once a build or load has succeeded.
func (s *service) ensureIndex(ctx context.Context) error {
	s.indexMu.Lock()
	ready := s.indexReady
	s.indexMu.Unlock()
	if ready {
		return nil
	}

	if err := s.index.LoadOrBuild(ctx, config.AllowedRootURL); err != nil {
		return err
	}

	s.indexMu.Lock()
	s.indexReady = true
	s.indexMu.Unlock()
	return nil
}
