package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawcare-web/internal/domain/session"

	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS web_sessions (
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS web_sessions_expires_at_idx ON web_sessions (expires_at);
`

type SessionRepo struct {
	db  Pool
	ttl time.Duration
	now func() time.Time
}

// NewSessionRepo: cada Save corre expires_at (sesión deslizante). ttl <= 0 => 24h.
func NewSessionRepo(db Pool, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepo{db: db, ttl: ttl, now: time.Now}
}

// EnsureSchema crea la tabla si no existe.
func (r *SessionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (r *SessionRepo) Load(ctx context.Context, id string) (session.Snapshot, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM web_sessions WHERE id = $1 AND expires_at > $2`,
		id, r.now(),
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return session.Snapshot{}, session.ErrSessionNotFound
	}
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("select session: %w", err)
	}

	var s session.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return session.Snapshot{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *SessionRepo) Save(ctx context.Context, s session.Snapshot) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO web_sessions (id, data, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at
	`, s.ID, b, r.now().Add(r.ttl))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired borra las filas vencidas y devuelve cuántas.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= $1`, r.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
