package memory

import (
	"context"
	"testing"
	"time"

	"pawcare-web/internal/domain/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_SaveLoadDelete(t *testing.T) {
	repo := NewSessionRepo(time.Hour)
	ctx := context.Background()

	snap := session.Snapshot{
		ID:       "abc",
		Identity: &session.Identity{ID: 1, Username: "ana"},
		Cookies:  []session.StoredCookie{{Name: "session", Value: "v"}},
	}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.Load(ctx, "abc")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepo_Expires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &sessionRepo{byID: map[string]entry{}, ttl: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, session.Snapshot{ID: "abc"}))

	now = now.Add(59 * time.Second)
	_, err := repo.Load(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = repo.Load(ctx, "abc")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepo_RequiresID(t *testing.T) {
	assert.Error(t, NewSessionRepo(0).Save(context.Background(), session.Snapshot{}))
}
