package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/logger"

	"github.com/gorilla/securecookie"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionStore es lo que el middleware usa del session.Manager.
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.State, error)
	Create() *session.State
	Save(ctx context.Context, st *session.State) error
}

type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool

	// Codec firma el id de sesión en la cookie. nil => id en claro.
	Codec *securecookie.SecureCookie
}

// Sessions resuelve la sesión de navegador a partir de la cookie:
// - cookie válida y sesión conocida => esa sesión
// - si no => sesión nueva y cookie nueva
// Después del handler guarda el snapshot (identidad, cookies del backend, destino del editor).
func Sessions(store SessionStore, opts SessionOptions, log logger.Logger) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "pawcare_sid"
	}
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := resolve(r, store, opts, log)

			// se reemite en cada request: expiración deslizante
			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    encodeID(opts, st.ID(), log),
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))

			// el navegador pudo cortar la conexión; el snapshot se guarda igual
			if err := store.Save(context.WithoutCancel(ctx), st); err != nil {
				log.Error("session save failed", map[string]any{
					"session_id": st.ID(),
					"error":      err,
				})
			}
		})
	}
}

func resolve(r *http.Request, store SessionStore, opts SessionOptions, log logger.Logger) *session.State {
	c, err := r.Cookie(opts.CookieName)
	if err != nil || c.Value == "" {
		return store.Create()
	}

	id, ok := decodeID(opts, c.Value)
	if !ok {
		log.Debug("session cookie rejected", map[string]any{"path": r.URL.Path})
		return store.Create()
	}

	st, err := store.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			log.Warn("session load failed", map[string]any{
				"session_id": id,
				"error":      err,
			})
		}
		return store.Create()
	}
	return st
}

func encodeID(opts SessionOptions, id string, log logger.Logger) string {
	if opts.Codec == nil {
		return id
	}
	v, err := opts.Codec.Encode(opts.CookieName, id)
	if err != nil {
		log.Error("session cookie encode failed", map[string]any{"error": err})
		return id
	}
	return v
}

func decodeID(opts SessionOptions, raw string) (string, bool) {
	if opts.Codec == nil {
		return raw, true
	}
	var id string
	if err := opts.Codec.Decode(opts.CookieName, raw, &id); err != nil {
		return "", false
	}
	return id, id != ""
}

func GetSession(ctx context.Context) (*session.State, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return nil, false
	}
	st, ok := v.(*session.State)
	return st, ok && st != nil
}

// WithSession pone st en ctx (tests y llamadas fuera del middleware).
func WithSession(ctx context.Context, st *session.State) context.Context {
	return context.WithValue(ctx, sessionKey, st)
}
