package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
	"pawcare-web/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	calls     int
	id        session.Identity
	err       error
	logoutErr error
}

func (f *fakeAPI) Register(_ context.Context, _ http.CookieJar, username, _ string) (session.Identity, error) {
	f.calls++
	if f.err != nil {
		return session.Identity{}, f.err
	}
	return session.Identity{ID: 1, Username: username}, nil
}

func (f *fakeAPI) Login(_ context.Context, _ http.CookieJar, username string) (session.Identity, error) {
	f.calls++
	if f.err != nil {
		return session.Identity{}, f.err
	}
	return session.Identity{ID: 1, Username: username}, nil
}

func (f *fakeAPI) Logout(context.Context, http.CookieJar) error {
	f.calls++
	return f.logoutErr
}

func TestRegister_InvalidEmailNeverCallsBackend(t *testing.T) {
	api := &fakeAPI{}
	f := NewFlow(api, notify.NewBus())
	st := session.NewState("s")

	err := f.Register(context.Background(), st, "ana", "not-an-email")

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, 0, api.calls)
	p := st.Page()
	assert.True(t, p.AuthModal.Open)
	assert.Equal(t, msgInvalidEmail, p.AuthModal.Error)
	assert.Equal(t, "not-an-email", p.AuthModal.Email, "form keeps what the user typed")
}

func TestRegister_EmptyUsernameNeverCallsBackend(t *testing.T) {
	api := &fakeAPI{}
	st := session.NewState("s")

	err := NewFlow(api, notify.NewBus()).Register(context.Background(), st, "   ", "ana@example.com")

	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.Equal(t, 0, api.calls)
	assert.Equal(t, msgUsernameRequired, st.Page().AuthModal.Error)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ana@example.com"))
	assert.True(t, ValidEmail(" a.b@c.co.uk "))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.com"))
	assert.False(t, ValidEmail("@c.com"))
}

func TestRegister_SuccessReplacesIdentityAndClosesModal(t *testing.T) {
	api := &fakeAPI{}
	st := session.NewState("s")
	st.SetIdentity(session.Identity{ID: 99, Username: "old"})

	require.NoError(t, NewFlow(api, notify.NewBus()).Register(context.Background(), st, "ana", "ana@example.com"))

	id, ok := st.Identity()
	require.True(t, ok)
	assert.Equal(t, "ana", id.Username)
	p := st.Page()
	assert.False(t, p.AuthModal.Open)
	assert.Equal(t, view.Authenticated, p.Auth)
	require.Len(t, p.Toasts, 1)
	assert.Equal(t, view.SeveritySuccess, p.Toasts[0].Severity)
}

func TestRegister_ServerErrorShownVerbatim(t *testing.T) {
	api := &fakeAPI{err: &httpclient.HTTPError{StatusCode: 400, Message: "Username already exists"}}
	st := session.NewState("s")

	err := NewFlow(api, notify.NewBus()).Register(context.Background(), st, "ana", "ana@example.com")

	require.Error(t, err)
	assert.Equal(t, "Username already exists", st.Page().AuthModal.Error)
	_, ok := st.Identity()
	assert.False(t, ok)
}

func TestLogin_NetworkFailureUsesFallback(t *testing.T) {
	api := &fakeAPI{err: errors.New("dial tcp: refused")}
	st := session.NewState("s")

	err := NewFlow(api, notify.NewBus()).Login(context.Background(), st, "ana")

	require.Error(t, err)
	assert.Equal(t, msgLoginFailed, st.Page().AuthModal.Error)
}

func TestLogin_RequiresUsernameOnly(t *testing.T) {
	api := &fakeAPI{}
	st := session.NewState("s")
	f := NewFlow(api, notify.NewBus())

	assert.ErrorIs(t, f.Login(context.Background(), st, ""), ErrUsernameRequired)
	assert.Equal(t, 0, api.calls)

	require.NoError(t, f.Login(context.Background(), st, "ana"))
	assert.Equal(t, 1, api.calls)
}

func TestLogout_ClearsIdentityEvenWhenBackendFails(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("backend down")}
	st := session.NewState("s")
	st.SetIdentity(session.Identity{ID: 1, Username: "ana"})
	st.Mutate(func(p *view.Page) { p.SetAuthenticated("ana") })

	err := NewFlow(api, notify.NewBus()).Logout(context.Background(), st)

	assert.Error(t, err)
	_, ok := st.Identity()
	assert.False(t, ok)
	p := st.Page()
	assert.Equal(t, view.Unauthenticated, p.Auth)
	require.NotNil(t, p.Redirect)
	assert.Equal(t, "/", p.Redirect.URL)
}

func TestOpenModal_DefaultsToLogin(t *testing.T) {
	st := session.NewState("s")
	f := NewFlow(&fakeAPI{}, notify.NewBus())

	f.OpenModal(st, "weird")
	assert.Equal(t, view.AuthModeLogin, st.Page().AuthModal.Mode)

	f.OpenModal(st, view.AuthModeRegister)
	assert.Equal(t, view.AuthModeRegister, st.Page().AuthModal.Mode)
}
