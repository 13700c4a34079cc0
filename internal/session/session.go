package session

import (
	"sync"

	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/pkg/logger_i"
)

// State is one conversation's mutable state. The escalation flag and its
// remembered question are guarded by the session lock: requests within a
// session are serialized so two turns can never interleave a transition.
type State struct {
	mu sync.Mutex

	ID                string
	pendingEscalation bool
	pendingQuestion   string
}

func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// SetPending records that the last question could not be answered locally and
// the next input decides the escalation. Caller must hold the session lock.
func (s *State) SetPending(question string) {
	s.pendingEscalation = true
	s.pendingQuestion = question
}

func (s *State) Pending() (string, bool) {
	return s.pendingQuestion, s.pendingEscalation
}

// ClearPending resolves the consent state regardless of outcome.
func (s *State) ClearPending() {
	s.pendingEscalation = false
	s.pendingQuestion = ""
}

// Manager owns all live sessions, keyed by session ID. States are created on
// first use and live for the process lifetime.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
	history  chatModel.HistoryStore
	logger   *logger_i.Logger
}

func NewManager(history chatModel.HistoryStore) *Manager {
	return &Manager{
		sessions: make(map[string]*State),
		history:  history,
		logger:   logger_i.NewLogger("SessionManager"),
	}
}

func (m *Manager) Get(id string) *State {
	m.mu.RLock()
	state, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok = m.sessions[id]; ok {
		return state
	}
	state = &State{ID: id}
	m.sessions[id] = state
	m.logger.Debug("Created session", "session", id)
	return state
}

func (m *Manager) History() chatModel.HistoryStore {
	return m.history
}
