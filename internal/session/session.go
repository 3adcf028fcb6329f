// Package session owns conversation state for the widget gateway: the
// append-only message history, the remote session identity, and the two
// network round-trips against the assistant API. Extraction never runs in
// here; it is a read-time projection of messages already in history.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation history. Messages are immutable
// once appended and are never removed.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the conversation lifecycle state. Transitions are guarded: an
// exchange can only start from idle, and idle is only reachable through a
// successful session creation.
type State int

const (
	StateUninitialized State = iota
	StateCreating
	StateIdle
	StateExchanging
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreating:
		return "creating"
	case StateIdle:
		return "idle"
	case StateExchanging:
		return "exchanging"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transport is the remote assistant API a conversation talks to.
type Transport interface {
	CreateSession(ctx context.Context, externalUserID string) (string, error)
	Exchange(ctx context.Context, sessionID, content string) (string, error)
}

// fallbackReply is appended when an exchange fails, so the conversation is
// never left without an assistant reply to a sent user message.
const fallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again."

// Conversation is a single widget conversation. All history mutations go
// through Start and Send; readers get copies and may run concurrently.
type Conversation struct {
	transport Transport
	logger    *slog.Logger
	greeting  string

	mu        sync.Mutex
	state     State
	sessionID string
	messages  []Message
	lastErr   error
}

func New(transport Transport, agentName, businessName string, logger *slog.Logger) *Conversation {
	return &Conversation{
		transport: transport,
		logger:    logger,
		greeting:  fmt.Sprintf("Hello! I'm %s from %s. How can I help you today?", agentName, businessName),
		state:     StateUninitialized,
	}
}

// Start performs the session-creation round-trip and seeds the history with
// the greeting. Allowed only from the uninitialized and failed states; a
// failed creation leaves the session id unset and may be retried.
func (c *Conversation) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUninitialized && c.state != StateFailed {
		c.mu.Unlock()
		return fmt.Errorf("session already started (state %s)", c.state)
	}
	c.state = StateCreating
	c.lastErr = nil
	c.mu.Unlock()

	externalUserID := "external_" + uuid.NewString()
	sessionID, err := c.transport.CreateSession(ctx, externalUserID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		c.lastErr = err
		return fmt.Errorf("create session: %w", err)
	}

	c.sessionID = sessionID
	c.messages = append(c.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: c.greeting,
	})
	c.state = StateIdle
	return nil
}

// Send appends the user message, performs the exchange round-trip and
// returns both appended messages, so callers persist exactly the pair this
// call produced rather than re-reading history that a later exchange may
// have extended. Blank input, a missing session, or an exchange already in
// flight make Send a silent no-op (ok is false). A failed exchange yields
// the fixed fallback reply rather than an error, and the user message is
// never retracted.
func (c *Conversation) Send(ctx context.Context, text string) (userMsg, reply Message, ok bool) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.state != StateIdle || c.sessionID == "" {
		c.mu.Unlock()
		return Message{}, Message{}, false
	}
	userMsg = Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: text,
	}
	c.messages = append(c.messages, userMsg)
	c.state = StateExchanging
	sessionID := c.sessionID
	c.mu.Unlock()

	content, err := c.transport.Exchange(ctx, sessionID, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("exchange failed", "session_id", sessionID, "error", err)
		c.lastErr = err
		content = fallbackReply
	}

	reply = Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: content,
	}
	c.messages = append(c.messages, reply)
	c.state = StateIdle
	return userMsg, reply, true
}

// State returns the current lifecycle state.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the remote session identifier, empty until creation
// succeeds.
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Messages returns a copy of the history in append order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastErr returns the most recent transport error, if any. It is cleared
// when a new session creation starts.
func (c *Conversation) LastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
