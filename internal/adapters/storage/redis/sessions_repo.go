// Package redis guarda los snapshots de sesión en Redis para que sobrevivan
// reinicios y se compartan entre réplicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/metrics"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "pawcare:session:"

// NewClient acepta redis://... o host:port.
func NewClient(addr string) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis address required")
	}

	var opts *goredis.Options
	if strings.Contains(addr, "://") {
		parsed, err := goredis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{Addr: addr}
	}

	c := goredis.NewClient(opts)
	c.AddHook(metricsHook{})
	return c, nil
}

// Ping verifica la conexión con timeout corto.
func Ping(ctx context.Context, c *goredis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Ping(ctx).Err()
}

type SessionRepo struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewSessionRepo: cada Save renueva el TTL (sesión deslizante).
func NewSessionRepo(rdb *goredis.Client, ttl time.Duration) *SessionRepo {
	return &SessionRepo{rdb: rdb, ttl: ttl, prefix: DefaultKeyPrefix}
}

func (r *SessionRepo) key(id string) string { return r.prefix + id }

func (r *SessionRepo) Load(ctx context.Context, id string) (session.Snapshot, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Snapshot{}, session.ErrSessionNotFound
	}
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("redis get session: %w", err)
	}

	var s session.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return session.Snapshot{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *SessionRepo) Save(ctx context.Context, s session.Snapshot) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

type metricsHook struct{}

func (metricsHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, goredis.Nil) {
			metrics.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, goredis.Nil) {
			metrics.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}
