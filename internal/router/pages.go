package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/platform/logger"
	"pawcare-web/internal/view"
)

// pageResponder renderiza la página de la sesión. Un redirect inmediato
// (logout) sale como 303; uno diferido va como meta refresh dentro de la página.
type pageResponder struct {
	rd  *view.Renderer
	log logger.Logger
}

func (p pageResponder) Respond(w http.ResponseWriter, r *http.Request, st *session.State, name view.PageName) {
	page, toasts := st.TakeView()

	if page.Redirect != nil && page.Redirect.After <= 0 {
		http.Redirect(w, r, page.Redirect.URL, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := p.rd.Render(w, name, page, toasts); err != nil {
		p.log.Error("render failed", map[string]any{
			"page":  string(name),
			"error": err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// fresh: una carga completa de página cierra los modales y descarta el destino
// del editor; el historial del chat se conserva.
func fresh(st *session.State) {
	st.ClearMedicationTarget()
	st.Mutate(func(p *view.Page) {
		p.AuthModal = view.AuthModal{}
		p.PetModal = view.PetModal{}
		p.MedicationModal = view.MedicationModal{}
		p.PostModal = view.PostModal{}
		p.Redirect = nil
	})
}

func indexHandler(gate *session.Gate, out pageResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		fresh(st)
		gate.Check(r.Context(), st)
		out.Respond(w, r, st, view.PageIndex)
	}
}

func dashboardHandler(gate *session.Gate, out pageResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		fresh(st)
		gate.CheckDashboard(r.Context(), st)
		out.Respond(w, r, st, view.PageDashboard)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend any    `json:"backend"`
}

// healthHandler: este proceso responde siempre 200; el estado del backend va informado.
func healthHandler(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if b == nil {
			resp.Backend = map[string]string{"status": "not configured"}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		h, err := b.Health(ctx)
		if err != nil {
			resp.Backend = map[string]string{"status": "unavailable", "error": err.Error()}
		} else {
			resp.Backend = h
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
