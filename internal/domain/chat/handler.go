package chat

import (
	"net/http"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/view"

	"github.com/go-chi/chi/v5"
)

type responder interface {
	Respond(w http.ResponseWriter, r *http.Request, st *session.State, page view.PageName)
}

func RegisterRoutes(r chi.Router, pane *Pane, out responder) {
	r.Post("/chat", sendHandler(pane, out))
}

func sendHandler(pane *Pane, out responder) http.HandlerFunc {
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

		pane.Send(r.Context(), st, r.PostFormValue("message"))
		out.Respond(w, r, st, view.PageIndex)
	}
}
