package router

import (
	"context"
	"net/http"
	"time"

	"pawcare-web/internal/adapters/api/pawcare"
	"pawcare-web/internal/domain/auth"
	"pawcare-web/internal/domain/chat"
	"pawcare-web/internal/domain/community"
	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/pets"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/platform/logger"
	"pawcare-web/internal/view"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend es todo lo que el front consume del backend JSON.
type Backend interface {
	session.IdentityAPI
	auth.API
	chat.API
	pets.Repository
	community.Repository
	Health(ctx context.Context) (pawcare.Health, error)
}

type Options struct {
	Backend  Backend
	Sessions *session.Manager
	Logger   logger.Logger // nil => Nop

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
	CookieCodec  *securecookie.SecureCookie // nil => id sin firmar

	Renderer *view.Renderer // nil => plantillas embebidas
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rd := opts.Renderer
	if rd == nil {
		rd = view.MustRenderer()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	// Sin sesión
	r.Get("/health", healthHandler(opts.Backend))
	r.Handle("/metrics", promhttp.Handler())

	// Services por módulo
	bus := notify.NewBus()
	petsSvc := pets.NewService(opts.Backend, bus)
	communitySvc := community.NewService(opts.Backend, bus)
	gate := session.NewGate(opts.Backend, petsSvc, communitySvc)
	flow := auth.NewFlow(opts.Backend, bus)
	pane := chat.NewPane(opts.Backend, bus)

	out := pageResponder{rd: rd, log: log}

	r.Group(func(sr chi.Router) {
		sr.Use(middleware.Sessions(opts.Sessions, middleware.SessionOptions{
			CookieName: opts.CookieName,
			TTL:        opts.SessionTTL,
			Secure:     opts.CookieSecure,
			Codec:      opts.CookieCodec,
		}, log))

		sr.Get("/", indexHandler(gate, out))
		sr.Get("/dashboard", dashboardHandler(gate, out))

		// Rutas por módulo
		auth.RegisterRoutes(sr, flow, out, log)
		chat.RegisterRoutes(sr, pane, out)
		pets.RegisterRoutes(sr, petsSvc, out)
		community.RegisterRoutes(sr, communitySvc, out)
	})

	return r
}
