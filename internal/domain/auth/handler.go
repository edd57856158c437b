package auth

import (
	"net/http"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/platform/logger"
	"pawcare-web/internal/view"

	"github.com/go-chi/chi/v5"
)

type responder interface {
	Respond(w http.ResponseWriter, r *http.Request, st *session.State, page view.PageName)
}

func RegisterRoutes(r chi.Router, flow *Flow, out responder, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/modal", openModalHandler(flow, out))
		ar.Post("/register", registerHandler(flow, out))
		ar.Post("/login", loginHandler(flow, out))
		ar.Post("/logout", logoutHandler(flow, out, log))
	})
}

// returnTo: los forms de auth viven en las dos páginas y vuelven a la de origen.
func returnTo(r *http.Request) view.PageName {
	if view.PageName(r.PostFormValue("return_to")) == view.PageDashboard {
		return view.PageDashboard
	}
	return view.PageIndex
}

func openModalHandler(flow *Flow, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		flow.OpenModal(st, view.AuthMode(r.PostFormValue("mode")))
		out.Respond(w, r, st, returnTo(r))
	}
}

func registerHandler(flow *Flow, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// el error ya quedó en el modal
		_ = flow.Register(r.Context(), st, r.PostFormValue("username"), r.PostFormValue("email"))
		out.Respond(w, r, st, returnTo(r))
	}
}

func loginHandler(flow *Flow, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		_ = flow.Login(r.Context(), st, r.PostFormValue("username"))
		out.Respond(w, r, st, returnTo(r))
	}
}

func logoutHandler(flow *Flow, out responder, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}

		if err := flow.Logout(r.Context(), st); err != nil && log != nil {
			log.Warn("backend logout failed", map[string]any{
				"session_id": st.ID(),
				"error":      err,
			})
		}
		out.Respond(w, r, st, view.PageIndex)
	}
}
