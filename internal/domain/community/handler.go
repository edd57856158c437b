package community

import (
	"net/http"
	"strconv"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/view"

	"github.com/go-chi/chi/v5"
)

type responder interface {
	Respond(w http.ResponseWriter, r *http.Request, st *session.State, page view.PageName)
}

func RegisterRoutes(r chi.Router, svc *Service, out responder) {
	r.Route("/community", func(cr chi.Router) {
		cr.Post("/", createPostHandler(svc, out))
		cr.Post("/form", openFormHandler(svc, out))
		cr.Post("/{postID}/delete", deletePostHandler(svc, out))
	})
}

func openFormHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		svc.OpenForm(st)
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func createPostHandler(svc *Service, out responder) http.HandlerFunc {
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

		_ = svc.Create(r.Context(), st, view.PostForm{
			Title:    r.PostFormValue("title"),
			Content:  r.PostFormValue("content"),
			PostType: r.PostFormValue("post_type"),
		})
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func deletePostHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid post id", http.StatusBadRequest)
			return
		}

		accepted := r.PostFormValue("confirm") == "yes"
		_ = svc.Delete(r.Context(), st, id, func(string) bool { return accepted })
		out.Respond(w, r, st, view.PageDashboard)
	}
}
