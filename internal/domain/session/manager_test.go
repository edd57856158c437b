package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu    sync.Mutex
	byID  map[string]Snapshot
	loads int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Snapshot{}}
}

func (r *testRepo) Load(_ context.Context, id string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	s, ok := r.byID[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return s, nil
}

func (r *testRepo) Save(_ context.Context, s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestManager_CreateGetSave(t *testing.T) {
	repo := newTestRepo()
	m := NewManager(repo, time.Hour)
	m.newID = func() string { return "sid-1" }

	st := m.Create()
	assert.Equal(t, "sid-1", st.ID())

	got, err := m.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Same(t, st, got, "live session must be reused")
	assert.Equal(t, 0, repo.loads)

	st.SetIdentity(Identity{ID: 1, Username: "ana"})
	require.NoError(t, m.Save(context.Background(), st))
	assert.Equal(t, "ana", repo.byID["sid-1"].Identity.Username)
}

func TestManager_GetFallsBackToRepo(t *testing.T) {
	repo := newTestRepo()
	repo.byID["persisted"] = Snapshot{ID: "persisted", Identity: &Identity{ID: 2, Username: "leo"}}
	m := NewManager(repo, time.Hour)

	st, err := m.Get(context.Background(), "persisted")
	require.NoError(t, err)
	id, ok := st.Identity()
	require.True(t, ok)
	assert.Equal(t, "leo", id.Username)

	// segunda vez viene de memoria
	_, err = m.Get(context.Background(), "persisted")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loads)
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(newTestRepo(), time.Hour)

	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Destroy(t *testing.T) {
	repo := newTestRepo()
	m := NewManager(repo, time.Hour)
	st := m.Create()
	require.NoError(t, m.Save(context.Background(), st))

	require.NoError(t, m.Destroy(context.Background(), st.ID()))
	_, err := m.Get(context.Background(), st.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// destruir algo que no existe no es error
	assert.NoError(t, m.Destroy(context.Background(), "ghost"))
}

func TestManager_SweepEvictsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(newTestRepo(), time.Hour)
	m.now = func() time.Time { return now }

	idle := m.Create()
	now = now.Add(2 * time.Hour)
	active := m.Create()

	assert.Equal(t, 1, m.Sweep())

	_, err := m.Get(context.Background(), idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound, "idle session was never saved, so it is gone")
	got, err := m.Get(context.Background(), active.ID())
	require.NoError(t, err)
	assert.Same(t, active, got)
}
