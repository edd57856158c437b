package session

import "context"

// Ticket identifica una request en curso dentro de un contexto de UI
// ("pets", "community", "medications:<id>", "chat").
// Iniciar otra request en el mismo contexto cancela la anterior y la deja obsoleta:
// su respuesta se descarta en vez de pisar lo ya renderizado.
type Ticket struct {
	st  *State
	key string
	n   uint64
}

// Begin abre una nueva generación para key y devuelve el ctx a usar en la llamada.
// El caller debe llamar Ticket.Done al terminar.
func (s *State) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	cctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gens[key]
	if !ok {
		g = &generation{}
		s.gens[key] = g
	}
	if g.cancel != nil {
		g.cancel()
	}
	g.n++
	g.cancel = cancel

	return cctx, Ticket{st: s, key: key, n: g.n}
}

// Current reporta si nadie inició otra request en el mismo contexto.
func (t Ticket) Current() bool {
	if t.st == nil {
		return false
	}
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	g, ok := t.st.gens[t.key]
	return ok && g.n == t.n
}

// Done libera el ctx de la request. Si sigue siendo la vigente, limpia el cancel.
func (t Ticket) Done() {
	if t.st == nil {
		return
	}
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	g, ok := t.st.gens[t.key]
	if !ok || g.n != t.n || g.cancel == nil {
		return
	}
	g.cancel()
	g.cancel = nil
}
