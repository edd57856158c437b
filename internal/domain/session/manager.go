package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pawcare-web/internal/platform/metrics"
	"pawcare-web/internal/view"

	"github.com/google/uuid"
)

// Manager mantiene las sesiones vivas del proceso y las respalda en un Repository.
// Las vivas conservan la página (estado de UI); el repo solo guarda el Snapshot.
type Manager struct {
	repo Repository
	ttl  time.Duration

	mu   sync.Mutex
	live map[string]*liveEntry

	now   func() time.Time
	newID func() string
}

type liveEntry struct {
	st       *State
	lastSeen time.Time
}

func NewManager(repo Repository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		repo:  repo,
		ttl:   ttl,
		live:  map[string]*liveEntry{},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Get devuelve la sesión id: primero la viva, si no la del repositorio.
func (m *Manager) Get(ctx context.Context, id string) (*State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	if e, ok := m.live[id]; ok {
		e.lastSeen = m.now()
		m.mu.Unlock()
		return e.st, nil
	}
	m.mu.Unlock()

	snap, err := m.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	st := FromSnapshot(snap)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Otra request pudo cargarla mientras tanto.
	if e, ok := m.live[id]; ok {
		e.lastSeen = m.now()
		return e.st, nil
	}
	m.live[id] = &liveEntry{st: st, lastSeen: m.now()}
	metrics.ActiveSessions.Set(float64(len(m.live)))
	return st, nil
}

// Create abre una sesión nueva (no autenticada).
func (m *Manager) Create() *State {
	st := NewState(m.newID())
	st.Mutate(func(p *view.Page) { p.SetUnauthenticated() })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[st.ID()] = &liveEntry{st: st, lastSeen: m.now()}
	metrics.ActiveSessions.Set(float64(len(m.live)))
	return st
}

// Save persiste el snapshot de st.
func (m *Manager) Save(ctx context.Context, st *State) error {
	if st == nil {
		return errors.New("session: nil state")
	}
	return m.repo.Save(ctx, st.Snapshot())
}

// Destroy olvida la sesión en memoria y en el repositorio.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.live, id)
	metrics.ActiveSessions.Set(float64(len(m.live)))
	m.mu.Unlock()

	if err := m.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Sweep descarta de memoria las sesiones sin actividad por más de ttl.
// Siguen en el repo hasta que su TTL expire allí.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	n := 0
	for id, e := range m.live {
		if e.lastSeen.Before(cutoff) {
			delete(m.live, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.live)))
	return n
}

// Run barre periódicamente hasta que ctx se cancele.
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
