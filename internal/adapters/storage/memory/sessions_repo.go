package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pawcare-web/internal/domain/session"
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

type entry struct {
	snap      session.Snapshot
	expiresAt time.Time
}

// NewSessionRepo guarda snapshots en memoria del proceso. ttl <= 0 => sin expiración.
// Las sesiones se pierden al reiniciar; para varias réplicas usar el store redis.
func NewSessionRepo(ttl time.Duration) session.Repository {
	return &sessionRepo{
		byID: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *sessionRepo) Load(ctx context.Context, id string) (session.Snapshot, error) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return session.Snapshot{}, session.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		r.mu.Lock()
		delete(r.byID, id)
		r.mu.Unlock()
		return session.Snapshot{}, session.ErrSessionNotFound
	}
	return e.snap, nil
}

func (r *sessionRepo) Save(ctx context.Context, s session.Snapshot) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	e := entry{snap: s}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = e
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
