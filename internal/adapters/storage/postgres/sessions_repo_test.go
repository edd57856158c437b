package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawcare-web/internal/domain/session"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*SessionRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	r := NewSessionRepo(mock, time.Hour)
	r.now = func() time.Time { return fixedNow }
	return r, mock
}

func TestSessionRepo_EnsureSchema(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS web_sessions`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, r.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Save_UpsertsWithSlidingExpiry(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`INSERT INTO web_sessions \(id, data, expires_at\)`).
		WithArgs("s1", pgxmock.AnyArg(), fixedNow.Add(time.Hour)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := r.Save(context.Background(), session.Snapshot{ID: "s1", Identity: &session.Identity{ID: 1, Username: "ana"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Save_RequiresID(t *testing.T) {
	r, mock := newRepo(t)
	require.Error(t, r.Save(context.Background(), session.Snapshot{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Load_OK(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT data FROM web_sessions WHERE id = \$1 AND expires_at > \$2`).
		WithArgs("s1", fixedNow).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"s1","identity":{"id":1,"username":"ana"},"medication_target":7}`)))

	got, err := r.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.ID)
	require.NotNil(t, got.Identity)
	require.Equal(t, "ana", got.Identity.Username)
	require.Equal(t, int64(7), got.MedicationTarget)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Load_MissingOrExpired(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT data FROM web_sessions`).
		WithArgs("gone", fixedNow).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Load(context.Background(), "gone")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_Load_DBError(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT data FROM web_sessions`).
		WithArgs("s1", fixedNow).
		WillReturnError(errors.New("connection reset"))

	_, err := r.Load(context.Background(), "s1")
	require.Error(t, err)
	require.NotErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepo_Load_CorruptData(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT data FROM web_sessions`).
		WithArgs("s1", fixedNow).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`not json`)))

	_, err := r.Load(context.Background(), "s1")
	require.ErrorContains(t, err, "decode session")
}

func TestSessionRepo_DeleteAndPurge(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM web_sessions WHERE id = \$1`).
		WithArgs("s1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM web_sessions WHERE expires_at <= \$1`).
		WithArgs(fixedNow).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, r.Delete(context.Background(), "s1"))
	n, err := r.PurgeExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
