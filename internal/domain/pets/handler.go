package pets

import (
	"net/http"
	"strconv"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/middleware"
	"pawcare-web/internal/view"

	"github.com/go-chi/chi/v5"
)

// responder escribe la página de la sesión como respuesta.
type responder interface {
	Respond(w http.ResponseWriter, r *http.Request, st *session.State, page view.PageName)
}

func RegisterRoutes(r chi.Router, svc *Service, out responder) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, out))
		pr.Post("/form", openFormHandler(svc, out))
		pr.Post("/{petID}/delete", deletePetHandler(svc, out))

		pr.Post("/{petID}/medications/toggle", toggleMedicationsHandler(svc, out))
		pr.Post("/{petID}/medications/editor", openEditorHandler(svc, out))
		pr.Post("/{petID}/medications/{medID}/delete", deleteMedicationHandler(svc, out))
	})

	// El destino del editor vive en la sesión, no en la URL.
	r.Post("/medications", createMedicationHandler(svc, out))
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

func createPetHandler(svc *Service, out responder) http.HandlerFunc {
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

		_ = svc.Create(r.Context(), st, view.PetForm{
			Name:               r.PostFormValue("name"),
			Species:            r.PostFormValue("species"),
			Breed:              r.PostFormValue("breed"),
			Age:                r.PostFormValue("age"),
			Weight:             r.PostFormValue("weight"),
			MedicalNotes:       r.PostFormValue("medical_notes"),
			DietaryPreferences: r.PostFormValue("dietary_preferences"),
		})
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func deletePetHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		petID, ok := idParam(r, "petID")
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		_ = svc.Delete(r.Context(), st, petID, formConfirm(r))
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func toggleMedicationsHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		petID, ok := idParam(r, "petID")
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		svc.ToggleMedications(r.Context(), st, petID)
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func openEditorHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		petID, ok := idParam(r, "petID")
		if !ok {
			http.Error(w, "invalid pet id", http.StatusBadRequest)
			return
		}

		svc.OpenMedicationEditor(r.Context(), st, petID)
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func createMedicationHandler(svc *Service, out responder) http.HandlerFunc {
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

		_ = svc.CreateMedication(r.Context(), st, view.MedicationForm{
			Name:      r.PostFormValue("name"),
			Dosage:    r.PostFormValue("dosage"),
			Frequency: r.PostFormValue("frequency"),
			TimeOfDay: r.PostFormValue("time_of_day"),
			Notes:     r.PostFormValue("notes"),
		})
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func deleteMedicationHandler(svc *Service, out responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		petID, ok1 := idParam(r, "petID")
		medID, ok2 := idParam(r, "medID")
		if !ok1 || !ok2 {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		_ = svc.DeleteMedication(r.Context(), st, petID, medID, formConfirm(r))
		out.Respond(w, r, st, view.PageDashboard)
	}
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// formConfirm: el onsubmit del form pone confirm=yes si el usuario aceptó.
func formConfirm(r *http.Request) session.Confirm {
	accepted := r.PostFormValue("confirm") == "yes"
	return func(string) bool { return accepted }
}
