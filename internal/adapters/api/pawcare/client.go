// Package pawcare es el cliente del backend JSON de PawCare.
// Todas las llamadas se hacen con el jar de la sesión de navegador que las origina.
package pawcare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pawcare-web/internal/domain/chat"
	"pawcare-web/internal/domain/community"
	"pawcare-web/internal/domain/pets"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("pawcare api not configured")

// Config del cliente. BaseURL incluye el prefijo de la API (p.ej. http://localhost:8000/api).
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWithHTTP permite inyectar el httpclient (tests).
func NewClientWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

func (c *Client) do(ctx context.Context, jar http.CookieJar, method, path string, in, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	return c.http.WithJar(jar).DoJSON(ctx, method, path, nil, in, out)
}

// ---- usuarios ----

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u userResponse) identity() session.Identity {
	return session.Identity{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (c *Client) CurrentUser(ctx context.Context, jar http.CookieJar) (session.Identity, error) {
	var out userResponse
	if err := c.do(ctx, jar, http.MethodGet, "current-user", nil, &out); err != nil {
		return session.Identity{}, err
	}
	if out.Username == "" {
		return session.Identity{}, fmt.Errorf("current-user: empty username")
	}
	return out.identity(), nil
}

func (c *Client) Register(ctx context.Context, jar http.CookieJar, username, email string) (session.Identity, error) {
	in := map[string]string{"username": username, "email": email}
	var out userResponse
	if err := c.do(ctx, jar, http.MethodPost, "register", in, &out); err != nil {
		return session.Identity{}, err
	}
	return out.identity(), nil
}

func (c *Client) Login(ctx context.Context, jar http.CookieJar, username string) (session.Identity, error) {
	in := map[string]string{"username": username}
	var out userResponse
	if err := c.do(ctx, jar, http.MethodPost, "login", in, &out); err != nil {
		return session.Identity{}, err
	}
	return out.identity(), nil
}

func (c *Client) Logout(ctx context.Context, jar http.CookieJar) error {
	return c.do(ctx, jar, http.MethodPost, "logout", nil, nil)
}

// ---- chat ----

func (c *Client) Chat(ctx context.Context, jar http.CookieJar, message string) (chat.Reply, error) {
	var out chat.Reply
	err := c.do(ctx, jar, http.MethodPost, "chat", map[string]string{"message": message}, &out)
	return out, err
}

// ---- mascotas ----

func (c *Client) ListPets(ctx context.Context, jar http.CookieJar) ([]pets.Pet, error) {
	var out []pets.Pet
	err := c.do(ctx, jar, http.MethodGet, "pets", nil, &out)
	return out, err
}

func (c *Client) CreatePet(ctx context.Context, jar http.CookieJar, in pets.CreateInput) (pets.Pet, error) {
	var out pets.Pet
	err := c.do(ctx, jar, http.MethodPost, "pets", in, &out)
	return out, err
}

func (c *Client) DeletePet(ctx context.Context, jar http.CookieJar, id int64) error {
	return c.do(ctx, jar, http.MethodDelete, fmt.Sprintf("pets/%d", id), nil, nil)
}

func (c *Client) ListMedications(ctx context.Context, jar http.CookieJar, petID int64) ([]pets.Medication, error) {
	var out []pets.Medication
	err := c.do(ctx, jar, http.MethodGet, fmt.Sprintf("pets/%d/medications", petID), nil, &out)
	return out, err
}

func (c *Client) CreateMedication(ctx context.Context, jar http.CookieJar, petID int64, in pets.MedicationInput) (pets.Medication, error) {
	var out pets.Medication
	err := c.do(ctx, jar, http.MethodPost, fmt.Sprintf("pets/%d/medications", petID), in, &out)
	return out, err
}

func (c *Client) DeleteMedication(ctx context.Context, jar http.CookieJar, id int64) error {
	return c.do(ctx, jar, http.MethodDelete, fmt.Sprintf("medications/%d", id), nil, nil)
}

// ---- comunidad ----

func (c *Client) ListPosts(ctx context.Context, jar http.CookieJar) ([]community.Post, error) {
	var out []community.Post
	err := c.do(ctx, jar, http.MethodGet, "community", nil, &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, jar http.CookieJar, in community.CreateInput) (community.Post, error) {
	var out community.Post
	err := c.do(ctx, jar, http.MethodPost, "community", in, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, jar http.CookieJar, id int64) error {
	return c.do(ctx, jar, http.MethodDelete, fmt.Sprintf("community/%d", id), nil, nil)
}

// ---- health ----

// Health es el estado que reporta el backend.
type Health struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	RAGInitialized bool   `json:"rag_initialized"`
	Database       string `json:"database"`
}

// Health no usa sesión.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, nil, http.MethodGet, "health", nil, &out)
	return out, err
}
