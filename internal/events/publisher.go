// Package events publishes widget lifecycle events to NATS for downstream
// analytics. Publishing is best-effort: the gateway runs fine without a
// broker, and failures never affect conversation state.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectGatewayStarted   = "rokovo.widget.gateway.started"
	SubjectSessionCreated   = "rokovo.widget.session.created"
	SubjectMessageExchanged = "rokovo.widget.message.exchanged"
)

// SessionCreated is published once per successful session creation.
type SessionCreated struct {
	SessionID string `json:"session_id"`
}

// MessageExchanged is published after each completed exchange, whether the
// reply came from the assistant or the fallback path. Products counts the
// records the extraction engine recovered from the reply.
type MessageExchanged struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Products  int    `json:"products"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
