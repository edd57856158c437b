package pets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
	"pawcare-web/internal/view"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTarget     = errors.New("no medication target")
)

const (
	EmptyPets        = `No pets added yet. Click "Add Pet" to get started!`
	EmptyMedications = "No medications recorded."

	ConfirmDeletePet        = "Are you sure you want to delete this pet? All medications will be deleted too."
	ConfirmDeleteMedication = "Delete this medication?"

	msgSessionExpired = "Session expired. Please log in again."
)

// listKey es la clave de generación de la lista de mascotas.
const listKey = "pets"

func medicationsKey(petID int64) string {
	return "medications:" + strconv.FormatInt(petID, 10)
}

// Service maneja la lista de mascotas y, dentro de cada card, sus medicaciones.
// Después de cada alta/baja se vuelve a pedir la lista al backend.
type Service struct {
	repo Repository
	bus  *notify.Bus
}

func NewService(repo Repository, bus *notify.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List pide las mascotas del usuario y reemplaza las cards.
// Una respuesta que llega después de otra List de la misma sesión se descarta.
func (s *Service) List(ctx context.Context, st *session.State) {
	ctx, tk := st.Begin(ctx, listKey)
	defer tk.Done()

	items, err := s.repo.ListPets(ctx, st)
	if !tk.Current() {
		return
	}
	if err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return
		}
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to load pets"))
		return
	}

	cards := make([]view.PetCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, toCard(p))
	}
	st.Mutate(func(pg *view.Page) {
		pg.Pets = view.PetList{Loaded: true, Empty: EmptyPets, Cards: cards}
	})
}

// OpenForm abre el modal de alta vacío.
func (s *Service) OpenForm(st *session.State) {
	st.Mutate(func(p *view.Page) { p.PetModal = view.PetModal{Open: true} })
}

// Create valida el formulario localmente; si falla no hay llamada al backend.
func (s *Service) Create(ctx context.Context, st *session.State, form view.PetForm) error {
	st.Mutate(func(p *view.Page) { p.PetModal = view.PetModal{Open: true, Form: form} })

	in, msg := parseForm(form)
	if msg != "" {
		s.modalError(st, msg)
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}

	if _, err := s.repo.CreatePet(ctx, st, in); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.modalError(st, httpclient.MessageOr(err, "Failed to add pet. Please try again."))
		return err
	}

	st.Mutate(func(p *view.Page) { p.PetModal = view.PetModal{} })
	s.bus.Success(st, "Pet added successfully!")
	s.List(ctx, st)
	return nil
}

// Delete pide confirmación; si se rechaza no hay llamada.
func (s *Service) Delete(ctx context.Context, st *session.State, id int64, confirm session.Confirm) error {
	if confirm == nil || !confirm(ConfirmDeletePet) {
		return nil
	}

	if err := s.repo.DeletePet(ctx, st, id); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to delete pet"))
		return err
	}

	s.bus.Success(st, "Pet deleted successfully")
	s.List(ctx, st)
	return nil
}

// ---- medicaciones ----

// ToggleMedications abre o cierra la lista de medicaciones de una card.
// Cada apertura vuelve a pedir la lista.
func (s *Service) ToggleMedications(ctx context.Context, st *session.State, petID int64) {
	if !s.ensurePet(ctx, st, petID) {
		return
	}

	open := false
	st.Mutate(func(p *view.Page) {
		if c := p.Pet(petID); c != nil {
			open = c.Medications.Open
		}
	})

	if open {
		// invalida un fetch en curso para esta card
		_, tk := st.Begin(ctx, medicationsKey(petID))
		tk.Done()
		st.Mutate(func(p *view.Page) {
			if c := p.Pet(petID); c != nil {
				c.Medications = view.MedicationList{}
			}
		})
		return
	}

	s.loadMedications(ctx, st, petID)
}

// OpenMedicationEditor fija la mascota destino y abre el modal.
func (s *Service) OpenMedicationEditor(ctx context.Context, st *session.State, petID int64) {
	if !s.ensurePet(ctx, st, petID) {
		return
	}

	st.SetMedicationTarget(petID)
	st.Mutate(func(p *view.Page) {
		m := view.MedicationModal{Open: true, PetID: petID}
		if c := p.Pet(petID); c != nil {
			m.PetName = c.Name
		}
		p.MedicationModal = m
	})
}

// CreateMedication da de alta en la mascota destino del editor.
func (s *Service) CreateMedication(ctx context.Context, st *session.State, form view.MedicationForm) error {
	petID, ok := st.MedicationTarget()
	st.Mutate(func(p *view.Page) {
		p.MedicationModal.Open = true
		p.MedicationModal.Form = form
		p.MedicationModal.Error = ""
		if ok {
			p.MedicationModal.PetID = petID
		}
	})

	if !ok {
		s.medModalError(st, "Please choose a pet first")
		return ErrNoTarget
	}
	in := MedicationInput{
		Name:      strings.TrimSpace(form.Name),
		Dosage:    strings.TrimSpace(form.Dosage),
		Frequency: strings.TrimSpace(form.Frequency),
		TimeOfDay: strings.TrimSpace(form.TimeOfDay),
		Notes:     strings.TrimSpace(form.Notes),
	}
	if in.Name == "" {
		s.medModalError(st, "Medication name is required")
		return fmt.Errorf("%w: medication name", ErrInvalidInput)
	}

	if _, err := s.repo.CreateMedication(ctx, st, petID, in); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.medModalError(st, httpclient.MessageOr(err, "Failed to add medication. Please try again."))
		return err
	}

	st.ClearMedicationTarget()
	st.Mutate(func(p *view.Page) { p.MedicationModal = view.MedicationModal{} })
	s.bus.Success(st, "Medication added successfully!")
	s.loadMedications(ctx, st, petID)
	return nil
}

// DeleteMedication pide confirmación y recarga la lista de esa mascota.
func (s *Service) DeleteMedication(ctx context.Context, st *session.State, petID, medID int64, confirm session.Confirm) error {
	if confirm == nil || !confirm(ConfirmDeleteMedication) {
		return nil
	}

	if err := s.repo.DeleteMedication(ctx, st, medID); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to delete medication"))
		return err
	}

	s.bus.Success(st, "Medication deleted")
	s.loadMedications(ctx, st, petID)
	return nil
}

func (s *Service) loadMedications(ctx context.Context, st *session.State, petID int64) {
	ctx, tk := st.Begin(ctx, medicationsKey(petID))
	defer tk.Done()

	items, err := s.repo.ListMedications(ctx, st, petID)
	if !tk.Current() {
		return
	}
	if err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return
		}
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to load medications"))
		return
	}

	cards := make([]view.MedicationCard, 0, len(items))
	for _, m := range items {
		cards = append(cards, view.MedicationCard{
			ID:        m.ID,
			PetID:     petID,
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			TimeOfDay: m.TimeOfDay,
			Notes:     m.Notes,
		})
	}
	st.Mutate(func(p *view.Page) {
		if c := p.Pet(petID); c != nil {
			c.Medications = view.MedicationList{Open: true, Loaded: true, Empty: EmptyMedications, Cards: cards}
		}
	})
}

// ensurePet garantiza que la card exista en la página; tras un reinicio
// la página arranca vacía y hay que volver a pedir la lista.
func (s *Service) ensurePet(ctx context.Context, st *session.State, petID int64) bool {
	found := func() bool {
		ok := false
		st.Mutate(func(p *view.Page) { ok = p.Pet(petID) != nil })
		return ok
	}
	if found() {
		return true
	}
	if st.Page().Pets.Loaded {
		s.bus.Error(st, "Pet not found")
		return false
	}

	s.List(ctx, st)
	if found() {
		return true
	}
	if _, ok := st.Identity(); ok {
		s.bus.Error(st, "Pet not found")
	}
	return false
}

// expired: 401 en el dashboard. Una sola vez por fetch: toast, sesión limpia
// y vuelta a la landing después de RedirectDelay.
func (s *Service) expired(st *session.State) {
	st.Expire()
	st.Mutate(func(p *view.Page) {
		p.Redirect = &view.Redirect{URL: view.PageIndex.Path(), After: session.RedirectDelay}
	})
	s.bus.Error(st, msgSessionExpired)
}

func (s *Service) modalError(st *session.State, msg string) {
	st.Mutate(func(p *view.Page) { p.PetModal.Error = msg })
}

func (s *Service) medModalError(st *session.State, msg string) {
	st.Mutate(func(p *view.Page) { p.MedicationModal.Error = msg })
}

func parseForm(f view.PetForm) (CreateInput, string) {
	in := CreateInput{
		Name:               strings.TrimSpace(f.Name),
		Species:            strings.TrimSpace(f.Species),
		Breed:              strings.TrimSpace(f.Breed),
		MedicalNotes:       strings.TrimSpace(f.MedicalNotes),
		DietaryPreferences: strings.TrimSpace(f.DietaryPreferences),
	}
	if in.Name == "" || in.Species == "" {
		return in, "Name and species are required"
	}

	if a := strings.TrimSpace(f.Age); a != "" {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return in, "Age must be a whole number"
		}
		in.Age = &n
	}
	if w := strings.TrimSpace(f.Weight); w != "" {
		n, err := strconv.ParseFloat(w, 64)
		if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return in, "Weight must be a number"
		}
		in.Weight = &n
	}
	return in, ""
}

func toCard(p Pet) view.PetCard {
	return view.PetCard{
		ID:                 p.ID,
		Name:               p.Name,
		Species:            p.Species,
		Breed:              p.Breed,
		Age:                formatAge(p.Age),
		Weight:             formatWeight(p.Weight),
		MedicalNotes:       p.MedicalNotes,
		DietaryPreferences: p.DietaryPreferences,
	}
}
