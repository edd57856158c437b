// Package notify agrega toasts transitorios a la página de una sesión.
package notify

import (
	"strings"
	"time"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/view"

	"github.com/google/uuid"
)

// Bus no tiene estado propio: cada Notify produce un toast independiente con su timer
// (ToastVisible + ToastExit). Sin cola ni límite; varios toasts se apilan.
type Bus struct {
	now   func() time.Time
	newID func() string
}

func NewBus() *Bus {
	return &Bus{now: time.Now, newID: uuid.NewString}
}

func (b *Bus) Notify(st *session.State, message string, severity view.Severity) {
	message = strings.TrimSpace(message)
	if st == nil || message == "" {
		return
	}
	if severity == "" {
		severity = view.SeverityInfo
	}

	now := b.now()
	t := view.Toast{
		ID:       b.newID(),
		Message:  message,
		Severity: severity,
		ShownAt:  now,
		HideAt:   now.Add(view.ToastVisible),
		RemoveAt: now.Add(view.ToastVisible + view.ToastExit),
	}
	st.Mutate(func(p *view.Page) { p.Toasts = append(p.Toasts, t) })
}

func (b *Bus) Success(st *session.State, message string) { b.Notify(st, message, view.SeveritySuccess) }
func (b *Bus) Error(st *session.State, message string)   { b.Notify(st, message, view.SeverityError) }
func (b *Bus) Warning(st *session.State, message string) { b.Notify(st, message, view.SeverityWarning) }
func (b *Bus) Info(st *session.State, message string)    { b.Notify(st, message, view.SeverityInfo) }
