package store

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS widget_sessions (
	id         text PRIMARY KEY,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS widget_messages (
	id         uuid PRIMARY KEY,
	session_id text NOT NULL REFERENCES widget_sessions(id),
	seq        int NOT NULL,
	role       text NOT NULL,
	content    text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (session_id, seq)
);
`

// Migrate creates the transcript tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
