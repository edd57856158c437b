package session

// Confirm pregunta al usuario antes de una acción destructiva.
// En el navegador lo resuelve window.confirm; el form trae confirm=yes si aceptó.
type Confirm func(prompt string) bool

// Always acepta sin preguntar.
func Always(string) bool { return true }

// Never rechaza sin preguntar.
func Never(string) bool { return false }
