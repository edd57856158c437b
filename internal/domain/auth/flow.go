package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
	"pawcare-web/internal/view"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidEmail     = errors.New("invalid email")
)

const (
	msgUsernameRequired = "Please enter a username"
	msgInvalidEmail     = "Please enter a valid email address"
	msgRegisterFailed   = "Registration failed. Please try again."
	msgLoginFailed      = "Login failed. Please try again."
)

// local@dominio.tld, sin espacios.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// API es lo que el flujo de auth necesita del backend.
type API interface {
	Register(ctx context.Context, jar http.CookieJar, username, email string) (session.Identity, error)
	Login(ctx context.Context, jar http.CookieJar, username string) (session.Identity, error)
	Logout(ctx context.Context, jar http.CookieJar) error
}

type Flow struct {
	api API
	bus *notify.Bus
}

func NewFlow(api API, bus *notify.Bus) *Flow {
	return &Flow{api: api, bus: bus}
}

// ValidEmail aplica el mismo patrón simple que el formulario.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// OpenModal abre el modal de auth en modo login o register.
func (f *Flow) OpenModal(st *session.State, mode view.AuthMode) {
	if mode != view.AuthModeRegister {
		mode = view.AuthModeLogin
	}
	st.Mutate(func(p *view.Page) {
		p.AuthModal = view.AuthModal{Open: true, Mode: mode}
	})
}

// Register valida localmente (sin red si falla) y registra.
func (f *Flow) Register(ctx context.Context, st *session.State, username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	st.Mutate(func(p *view.Page) {
		p.AuthModal = view.AuthModal{Open: true, Mode: view.AuthModeRegister, Username: username, Email: email}
	})

	if username == "" {
		f.inlineError(st, msgUsernameRequired)
		return ErrUsernameRequired
	}
	if !emailPattern.MatchString(email) {
		f.inlineError(st, msgInvalidEmail)
		return ErrInvalidEmail
	}

	id, err := f.api.Register(ctx, st, username, email)
	if err != nil {
		f.inlineError(st, httpclient.MessageOr(err, msgRegisterFailed))
		return err
	}

	f.signedIn(st, id, "Welcome to PawCare, "+id.Username+"!")
	return nil
}

// Login solo exige username.
func (f *Flow) Login(ctx context.Context, st *session.State, username string) error {
	username = strings.TrimSpace(username)

	st.Mutate(func(p *view.Page) {
		p.AuthModal = view.AuthModal{Open: true, Mode: view.AuthModeLogin, Username: username}
	})

	if username == "" {
		f.inlineError(st, msgUsernameRequired)
		return ErrUsernameRequired
	}

	id, err := f.api.Login(ctx, st, username)
	if err != nil {
		f.inlineError(st, httpclient.MessageOr(err, msgLoginFailed))
		return err
	}

	f.signedIn(st, id, "Welcome back, "+id.Username+"!")
	return nil
}

// Logout es best-effort: la identidad local se borra aunque el backend falle.
// El error del backend se devuelve solo para loguearlo.
func (f *Flow) Logout(ctx context.Context, st *session.State) error {
	err := f.api.Logout(ctx, st)

	st.ClearIdentity()
	st.ClearCookies()
	st.Mutate(func(p *view.Page) {
		p.SetUnauthenticated()
		p.AuthModal = view.AuthModal{}
		p.Chat = view.Chat{}
		p.Posts = view.PostList{}
		p.Redirect = &view.Redirect{URL: view.PageIndex.Path()}
	})
	return err
}

func (f *Flow) signedIn(st *session.State, id session.Identity, msg string) {
	st.SetIdentity(id)
	st.Mutate(func(p *view.Page) {
		p.SetAuthenticated(id.Username)
		p.AuthModal = view.AuthModal{}
	})
	f.bus.Success(st, msg)
}

func (f *Flow) inlineError(st *session.State, msg string) {
	st.Mutate(func(p *view.Page) { p.AuthModal.Error = msg })
}
