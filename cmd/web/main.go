package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawcare-web/internal/adapters/api/pawcare"
	"pawcare-web/internal/adapters/storage/memory"
	"pawcare-web/internal/adapters/storage/postgres"
	"pawcare-web/internal/adapters/storage/redis"
	"pawcare-web/internal/config"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/logger"
	"pawcare-web/internal/router"

	"github.com/gorilla/securecookie"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := pawcare.NewClient(pawcare.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.BackendTimeout})
	if err != nil {
		log.Error("backend client", map[string]any{"error": err})
		os.Exit(1)
	}

	repo := memory.NewSessionRepo(cfg.SessionTTL)
	switch {
	case cfg.RedisURL != "":
		rdb, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("redis client", map[string]any{"error": err})
			os.Exit(1)
		}
		defer rdb.Close()
		if err := redis.Ping(ctx, rdb); err != nil {
			log.Error("redis ping", map[string]any{"error": err})
			os.Exit(1)
		}
		repo = redis.NewSessionRepo(rdb, cfg.SessionTTL)
		log.Info("sessions in redis", nil)

	case cfg.DatabaseURL != "":
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres", map[string]any{"error": err})
			os.Exit(1)
		}
		defer pool.Close()
		pg := postgres.NewSessionRepo(pool, cfg.SessionTTL)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("postgres schema", map[string]any{"error": err})
			os.Exit(1)
		}
		go purgeSessions(ctx, pg, log)
		repo = pg
		log.Info("sessions in postgres", nil)
	}

	mgr := session.NewManager(repo, cfg.SessionTTL)
	go mgr.Run(ctx, time.Minute)

	key := []byte(cfg.SessionSecret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		log.Warn("SESSION_SECRET empty, sessions will not survive a restart", nil)
	}

	handler := router.NewRouter(router.Options{
		Backend:      backend,
		Sessions:     mgr,
		Logger:       log,
		CookieName:   cfg.SessionCookieName,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		CookieCodec:  securecookie.New(key, nil),
	})

	// WriteTimeout por encima del timeout del backend: el chat puede tardar.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", map[string]any{"error": err})
		}
	}()

	log.Info("starting server", map[string]any{
		"addr":    cfg.Addr(),
		"backend": cfg.APIBaseURL,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

// purgeSessions borra filas vencidas; redis y memory expiran solos.
func purgeSessions(ctx context.Context, pg *postgres.SessionRepo, log logger.Logger) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := pg.PurgeExpired(ctx)
			if err != nil {
				log.Warn("purge sessions", map[string]any{"error": err})
				continue
			}
			if n > 0 {
				log.Debug("purged sessions", map[string]any{"count": n})
			}
		}
	}
}
