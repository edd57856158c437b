package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer convierte una Page a HTML. html/template escapa todo por defecto:
// ningún campo de usuario llega al documento como markup.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("pawcare").Funcs(template.FuncMap{
		"ms": func(d time.Duration) int64 { return d.Milliseconds() },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t, now: time.Now}, nil
}

// MustRenderer es para main/tests: las plantillas van embebidas, un error es de compilación.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

type toastData struct {
	Toast
	VisibleMS int64
	ExitMS    int64
}

type pageData struct {
	Name           PageName
	Page           Page
	Toasts         []toastData
	RedirectURL    string
	RedirectAfterS int
}

// Render escribe la página completa. Se renderiza a un buffer primero
// para no dejar HTML a medias si una plantilla falla.
func (r *Renderer) Render(w io.Writer, name PageName, p Page, toasts []Toast) error {
	now := r.now()

	data := pageData{Name: name, Page: p}
	for _, t := range toasts {
		data.Toasts = append(data.Toasts, toastData{
			Toast:     t,
			VisibleMS: t.VisibleFor(now).Milliseconds(),
			ExitMS:    ToastExit.Milliseconds(),
		})
	}
	if p.Redirect != nil && p.Redirect.After > 0 {
		data.RedirectURL = p.Redirect.URL
		data.RedirectAfterS = int((p.Redirect.After + time.Second - 1) / time.Second)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(name), data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
