package session

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"pawcare-web/internal/view"
)

// State es el estado de una sesión de navegador: identidad cacheada,
// mascota destino del editor de medicaciones, cookies del backend y la página.
// Se pasa explícitamente a cada componente; todos los campos van bajo mu.
//
// State implementa http.CookieJar: las llamadas al backend hechas con este jar
// son "credentialed" para esta sesión y solo para esta.
type State struct {
	id string

	mu        sync.Mutex
	identity  *Identity
	medTarget int64
	cookies   map[string]StoredCookie
	page      view.Page
	gens      map[string]*generation
	updatedAt time.Time
	now       func() time.Time
}

type generation struct {
	n      uint64
	cancel context.CancelFunc
}

func NewState(id string) *State {
	return &State{
		id:      id,
		cookies: map[string]StoredCookie{},
		gens:    map[string]*generation{},
		now:     time.Now,
	}
}

// FromSnapshot reconstruye una sesión persistida. La página arranca vacía.
func FromSnapshot(s Snapshot) *State {
	st := NewState(s.ID)
	if s.Identity != nil {
		id := *s.Identity
		st.identity = &id
		st.page.SetAuthenticated(id.Username)
	} else {
		st.page.SetUnauthenticated()
	}
	st.medTarget = s.MedicationTarget
	for _, c := range s.Cookies {
		st.cookies[c.Name] = c
	}
	st.updatedAt = s.UpdatedAt
	return st
}

func (s *State) ID() string { return s.id }

// ---- identidad ----

func (s *State) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *State) SetIdentity(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
	s.touch()
}

func (s *State) ClearIdentity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.medTarget = 0
	s.touch()
}

// Expire trata un 401 del backend: olvida la identidad y deja la página sin sesión.
func (s *State) Expire() {
	s.ClearIdentity()
	s.Mutate(func(p *view.Page) { p.SetUnauthenticated() })
}

// ClearCookies olvida las cookies del backend (logout).
func (s *State) ClearCookies() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = map[string]StoredCookie{}
	s.touch()
}

// ---- editor de medicaciones ----

func (s *State) MedicationTarget() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.medTarget, s.medTarget != 0
}

func (s *State) SetMedicationTarget(petID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medTarget = petID
	s.touch()
}

func (s *State) ClearMedicationTarget() {
	s.SetMedicationTarget(0)
}

// ---- página ----

// Mutate aplica fn a la página bajo lock.
func (s *State) Mutate(fn func(p *view.Page)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.page)
}

// Page devuelve una copia de la página.
func (s *State) Page() view.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Clone()
}

// TakeView devuelve la página a renderizar y consume lo que se muestra una sola vez
// (toasts y redirect).
func (s *State) TakeView() (view.Page, []view.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.page.Clone()
	toasts := s.page.TakeToasts(s.now())
	s.page.Redirect = nil
	p.Toasts = nil
	return p, toasts
}

// ---- http.CookieJar ----

// SetCookies guarda cookies del backend. Hay un solo backend por proceso,
// así que se indexan por nombre y se ignora el dominio.
func (s *State) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		expired := c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now))
		if expired {
			delete(s.cookies, c.Name)
			continue
		}
		sc := StoredCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: c.Expires}
		if c.MaxAge > 0 {
			sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		s.cookies[c.Name] = sc
	}
	s.touch()
}

func (s *State) Cookies(_ *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := make([]*http.Cookie, 0, len(s.cookies))
	for name, c := range s.cookies {
		if !c.Expires.IsZero() && !c.Expires.After(now) {
			delete(s.cookies, name)
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ---- persistencia ----

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:               s.id,
		MedicationTarget: s.medTarget,
		UpdatedAt:        s.updatedAt,
	}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	for _, c := range s.cookies {
		snap.Cookies = append(snap.Cookies, c)
	}
	sort.Slice(snap.Cookies, func(i, j int) bool { return snap.Cookies[i].Name < snap.Cookies[j].Name })
	return snap
}

// UpdatedAt es la última modificación de identidad/cookies/target.
func (s *State) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// touch requiere mu tomado.
func (s *State) touch() {
	s.updatedAt = s.now()
}
