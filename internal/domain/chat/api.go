package chat

import (
	"context"
	"net/http"
)

// API es el endpoint de chat del backend. Requiere sesión.
type API interface {
	Chat(ctx context.Context, jar http.CookieJar, message string) (Reply, error)
}
