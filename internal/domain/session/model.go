package session

import "time"

// Identity es el perfil mínimo del usuario autenticado.
// Ausencia de Identity = no autenticado.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// StoredCookie es una cookie del backend guardada para la sesión del navegador.
type StoredCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Snapshot es la parte persistible de una sesión (sin estado de UI).
type Snapshot struct {
	ID               string         `json:"id"`
	Identity         *Identity      `json:"identity,omitempty"`
	MedicationTarget int64          `json:"medication_target,omitempty"`
	Cookies          []StoredCookie `json:"cookies,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
