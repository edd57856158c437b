package session

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Repository persiste snapshots de sesión (memory o redis).
type Repository interface {
	Load(ctx context.Context, id string) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Delete(ctx context.Context, id string) error
}
