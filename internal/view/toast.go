package view

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	ToastVisible = 3 * time.Second
	ToastExit    = 300 * time.Millisecond
)

// Toast es una notificación transitoria con su propio timer.
type Toast struct {
	ID       string
	Message  string
	Severity Severity

	ShownAt  time.Time
	HideAt   time.Time // empieza la transición de salida
	RemoveAt time.Time // se quita del DOM
}

// VisibleFor es lo que le queda visible a partir de now (0 si ya está saliendo).
func (t Toast) VisibleFor(now time.Time) time.Duration {
	if d := t.HideAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
