package pets

import (
	"context"
	"net/http"
)

// Repository es el backend de mascotas y medicaciones.
// jar son las cookies de la sesión de navegador que hace la llamada.
type Repository interface {
	ListPets(ctx context.Context, jar http.CookieJar) ([]Pet, error)
	CreatePet(ctx context.Context, jar http.CookieJar, in CreateInput) (Pet, error)
	DeletePet(ctx context.Context, jar http.CookieJar, id int64) error

	ListMedications(ctx context.Context, jar http.CookieJar, petID int64) ([]Medication, error)
	CreateMedication(ctx context.Context, jar http.CookieJar, petID int64, in MedicationInput) (Medication, error)
	DeleteMedication(ctx context.Context, jar http.CookieJar, id int64) error
}
