package session

import (
	"context"
	"log/slog"
	"sync"
)

// Manager tracks live conversations by their remote session id so HTTP
// handlers can address them across requests. Each conversation exclusively
// owns its own history; the manager only routes.
type Manager struct {
	transport    Transport
	agentName    string
	businessName string
	logger       *slog.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

func NewManager(transport Transport, agentName, businessName string, logger *slog.Logger) *Manager {
	return &Manager{
		transport:     transport,
		agentName:     agentName,
		businessName:  businessName,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

// Create starts a new conversation and registers it under its session id.
func (m *Manager) Create(ctx context.Context) (*Conversation, error) {
	conv := New(m.transport, m.agentName, m.businessName, m.logger)
	if err := conv.Start(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.conversations[conv.SessionID()] = conv
	m.mu.Unlock()

	m.logger.Info("conversation started", "session_id", conv.SessionID())
	return conv, nil
}

// Get returns the conversation for a session id.
func (m *Manager) Get(sessionID string) (*Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.conversations[sessionID]
	return conv, ok
}

// Count returns the number of live conversations.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conversations)
}
