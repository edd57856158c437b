package view

import "time"

type AuthState string

const (
	AuthUnknown     AuthState = ""
	Authenticated   AuthState = "authenticated"
	Unauthenticated AuthState = "unauthenticated"
)

type PageName string

const (
	PageIndex     PageName = "index"
	PageDashboard PageName = "dashboard"
)

// Path devuelve la URL de la página.
func (n PageName) Path() string {
	if n == PageDashboard {
		return "/dashboard"
	}
	return "/"
}

// Page es el estado visible de una sesión de navegador.
// Los componentes lo mutan; el Renderer lo convierte a HTML.
type Page struct {
	Auth     AuthState
	Username string

	Chat      Chat
	AuthModal AuthModal

	Pets  PetList
	Posts PostList

	PetModal        PetModal
	MedicationModal MedicationModal
	PostModal       PostModal

	Toasts   []Toast
	Redirect *Redirect
}

type Redirect struct {
	URL   string
	After time.Duration // 0 => inmediato
}

// ---- chat ----

type ChatRole string

const (
	ChatUser   ChatRole = "user"
	ChatBot    ChatRole = "bot"
	ChatTyping ChatRole = "typing"
	ChatNotice ChatRole = "notice"
	ChatError  ChatRole = "error"
)

type ChatSource struct {
	Content string
	Source  string
	Page    string
}

type ChatEntry struct {
	ID      string
	Role    ChatRole
	Text    string
	Sources []ChatSource
}

type Chat struct {
	Entries       []ChatEntry
	Draft         string
	InputDisabled bool
	Focused       bool
}

// ---- modales ----

type AuthMode string

const (
	AuthModeLogin    AuthMode = "login"
	AuthModeRegister AuthMode = "register"
)

type AuthModal struct {
	Open     bool
	Mode     AuthMode
	Username string
	Email    string
	Error    string
}

type PetForm struct {
	Name               string
	Species            string
	Breed              string
	Age                string
	Weight             string
	MedicalNotes       string
	DietaryPreferences string
}

type PetModal struct {
	Open  bool
	Form  PetForm
	Error string
}

type MedicationForm struct {
	Name      string
	Dosage    string
	Frequency string
	TimeOfDay string
	Notes     string
}

type MedicationModal struct {
	Open    bool
	PetID   int64
	PetName string
	Form    MedicationForm
	Error   string
}

type PostForm struct {
	Title    string
	Content  string
	PostType string
}

type PostModal struct {
	Open  bool
	Form  PostForm
	Error string
}

// ---- listas ----

type MedicationCard struct {
	ID        int64
	PetID     int64
	Name      string
	Dosage    string
	Frequency string
	TimeOfDay string
	Notes     string
}

type MedicationList struct {
	Open   bool
	Loaded bool
	Empty  string
	Cards  []MedicationCard
}

type PetCard struct {
	ID                 int64
	Name               string
	Species            string
	Breed              string
	Age                string
	Weight             string
	MedicalNotes       string
	DietaryPreferences string

	Medications MedicationList
}

type PetList struct {
	Loaded bool
	Empty  string
	Cards  []PetCard
}

type PostCard struct {
	ID        int64
	Title     string
	Content   string
	PostType  string
	Author    string
	CreatedAt string
	Own       bool
}

type PostList struct {
	Loaded bool
	Empty  string
	Cards  []PostCard
}

// ---- helpers ----

// SetAuthenticated muestra las zonas de usuario logueado.
func (p *Page) SetAuthenticated(username string) {
	p.Auth = Authenticated
	p.Username = username
}

// SetUnauthenticated oculta las zonas de usuario y vacía lo que solo ve un usuario logueado.
func (p *Page) SetUnauthenticated() {
	p.Auth = Unauthenticated
	p.Username = ""
	p.Pets = PetList{}
	p.PetModal = PetModal{}
	p.MedicationModal = MedicationModal{}
	p.PostModal = PostModal{}
}

func (p *Page) AppendChat(e ChatEntry) {
	p.Chat.Entries = append(p.Chat.Entries, e)
}

// RemoveChatEntry quita la entrada con id (no-op si no existe).
func (p *Page) RemoveChatEntry(id string) {
	out := p.Chat.Entries[:0]
	for _, e := range p.Chat.Entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	p.Chat.Entries = out
}

// Pet devuelve la card de la mascota id o nil.
func (p *Page) Pet(id int64) *PetCard {
	for i := range p.Pets.Cards {
		if p.Pets.Cards[i].ID == id {
			return &p.Pets.Cards[i]
		}
	}
	return nil
}

// TakeToasts devuelve los toasts aún vigentes y los quita de la página.
func (p *Page) TakeToasts(now time.Time) []Toast {
	out := make([]Toast, 0, len(p.Toasts))
	for _, t := range p.Toasts {
		if now.Before(t.RemoveAt) {
			out = append(out, t)
		}
	}
	p.Toasts = nil
	return out
}

// Clone copia profunda para renderizar fuera del lock de la sesión.
func (p Page) Clone() Page {
	c := p
	c.Chat.Entries = append([]ChatEntry(nil), p.Chat.Entries...)
	for i := range c.Chat.Entries {
		c.Chat.Entries[i].Sources = append([]ChatSource(nil), p.Chat.Entries[i].Sources...)
	}
	c.Pets.Cards = append([]PetCard(nil), p.Pets.Cards...)
	for i := range c.Pets.Cards {
		c.Pets.Cards[i].Medications.Cards = append([]MedicationCard(nil), p.Pets.Cards[i].Medications.Cards...)
	}
	c.Posts.Cards = append([]PostCard(nil), p.Posts.Cards...)
	c.Toasts = append([]Toast(nil), p.Toasts...)
	if p.Redirect != nil {
		r := *p.Redirect
		c.Redirect = &r
	}
	return c
}
