package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pawcare-web/internal/view"
)

// RedirectDelay es la espera antes de mandar a la landing a un usuario no autenticado.
const RedirectDelay = 2 * time.Second

// IdentityAPI es lo que el gate necesita del backend.
type IdentityAPI interface {
	CurrentUser(ctx context.Context, jar http.CookieJar) (Identity, error)
}

// Loader carga una lista en la página de la sesión.
type Loader interface {
	List(ctx context.Context, st *State)
}

// Gate consulta la identidad en el backend y alterna las zonas visibles de la página.
type Gate struct {
	api   IdentityAPI
	pets  Loader
	posts Loader
}

func NewGate(api IdentityAPI, pets, posts Loader) *Gate {
	return &Gate{api: api, pets: pets, posts: posts}
}

// Check hace un único GET de identidad. Éxito => autenticado; cualquier otra cosa
// (no-2xx o error de red) => no autenticado. Sin reintentos.
func (g *Gate) Check(ctx context.Context, st *State) bool {
	id, err := g.api.CurrentUser(ctx, st)
	if err != nil {
		st.Expire()
		return false
	}

	st.SetIdentity(id)
	st.Mutate(func(p *view.Page) { p.SetAuthenticated(id.Username) })
	return true
}

// CheckDashboard es la variante del dashboard: sin sesión redirige a la landing
// tras RedirectDelay; con sesión dispara las cargas de mascotas y comunidad.
// Las dos cargas son independientes: el fallo de una no afecta a la otra.
func (g *Gate) CheckDashboard(ctx context.Context, st *State) bool {
	if !g.Check(ctx, st) {
		st.Mutate(func(p *view.Page) {
			p.Redirect = &view.Redirect{URL: view.PageIndex.Path(), After: RedirectDelay}
		})
		return false
	}

	var wg sync.WaitGroup
	for _, l := range []Loader{g.pets, g.posts} {
		if l == nil {
			continue
		}
		wg.Add(1)
		go func(l Loader) {
			defer wg.Done()
			l.List(ctx, st)
		}(l)
	}
	wg.Wait()
	return true
}
