package store

import (
	"context"
	"fmt"
	"time"
)

// TranscriptEntry is one persisted message row.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSession records a new widget session. Re-recording an existing
// session is a no-op, so retried creations stay safe.
func (s *Store) CreateSession(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO widget_sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// AddMessage appends a message to a session transcript with an
// auto-incremented seq.
func (s *Store) AddMessage(ctx context.Context, sessionID, messageID, role, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO widget_messages (id, session_id, seq, role, content)
		 VALUES ($1, $2, COALESCE((SELECT MAX(seq) FROM widget_messages WHERE session_id = $2), 0) + 1, $3, $4)`,
		messageID, sessionID, role, content,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages returns a session transcript ordered by seq.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]TranscriptEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, seq, role, content, created_at
		 FROM widget_messages WHERE session_id = $1 ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var entries []TranscriptEntry
	for rows.Next() {
		var e TranscriptEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Role, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return entries, nil
}
