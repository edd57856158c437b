package community

import (
	"context"
	"net/http"
)

// Repository es el backend de la comunidad. List es público; Create y Delete
// requieren sesión en el backend.
type Repository interface {
	ListPosts(ctx context.Context, jar http.CookieJar) ([]Post, error)
	CreatePost(ctx context.Context, jar http.CookieJar, in CreateInput) (Post, error)
	DeletePost(ctx context.Context, jar http.CookieJar, id int64) error
}
