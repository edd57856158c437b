package pets

import "strconv"

// Pet es el perfil de una mascota tal como lo devuelve el backend.
// Breed, age, weight y notas son opcionales (null en JSON).
type Pet struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Species            string   `json:"species"`
	Breed              string   `json:"breed"`
	Age                *int     `json:"age"`
	Weight             *float64 `json:"weight"`
	MedicalNotes       string   `json:"medical_notes"`
	DietaryPreferences string   `json:"dietary_preferences"`
}

// CreateInput es el body de POST pets. Los opcionales vacíos no se envían.
type CreateInput struct {
	Name               string   `json:"name"`
	Species            string   `json:"species"`
	Breed              string   `json:"breed,omitempty"`
	Age                *int     `json:"age,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	MedicalNotes       string   `json:"medical_notes,omitempty"`
	DietaryPreferences string   `json:"dietary_preferences,omitempty"`
}

// Medication pertenece a una mascota. Se borra en cascada con ella (lo hace el backend).
type Medication struct {
	ID        int64  `json:"id"`
	PetID     int64  `json:"pet_id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	TimeOfDay string `json:"time_of_day"`
	Notes     string `json:"notes"`
}

// MedicationInput es el body de POST pets/{id}/medications.
type MedicationInput struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	TimeOfDay string `json:"time_of_day,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}
