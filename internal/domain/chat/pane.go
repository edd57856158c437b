package chat

import (
	"context"
	"strings"

	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
	"pawcare-web/internal/view"

	"github.com/google/uuid"
)

const (
	msgLoginRequired  = "Please login to chat with PawCare AI"
	msgSessionExpired = "Your session has expired. Please login again."
	msgGenericError   = "Sorry, I encountered an error. Please try again."
	msgEmptyAnswer    = "I'm sorry, I couldn't generate a response."
)

const ticketKey = "chat"

// Pane es el chat de la landing. Un envío a la vez por sesión: si llega otro,
// el anterior se cancela y su respuesta se descarta.
type Pane struct {
	api   API
	bus   *notify.Bus
	newID func() string
}

func NewPane(api API, bus *notify.Bus) *Pane {
	return &Pane{api: api, bus: bus, newID: uuid.NewString}
}

// Send manda message al asistente. Sin identidad abre el modal de login y no llama al backend.
func (c *Pane) Send(ctx context.Context, st *session.State, message string) {
	if _, ok := st.Identity(); !ok {
		st.Mutate(func(p *view.Page) {
			p.AuthModal = view.AuthModal{Open: true, Mode: view.AuthModeLogin}
			p.Chat.Draft = message
		})
		c.bus.Warning(st, msgLoginRequired)
		return
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	ctx, tk := st.Begin(ctx, ticketKey)
	defer tk.Done()

	typingID := c.newID()
	st.Mutate(func(p *view.Page) {
		p.AppendChat(view.ChatEntry{ID: c.newID(), Role: view.ChatUser, Text: message})
		p.AppendChat(view.ChatEntry{ID: typingID, Role: view.ChatTyping})
		p.Chat.Draft = ""
		p.Chat.InputDisabled = true
		p.Chat.Focused = false
	})

	// el input vuelve a quedar habilitado en toda salida, salvo que otro envío lo tenga tomado
	defer func() {
		if !tk.Current() {
			return
		}
		st.Mutate(func(p *view.Page) {
			p.Chat.InputDisabled = false
			p.Chat.Focused = true
		})
	}()

	reply, err := c.api.Chat(ctx, st, message)

	st.Mutate(func(p *view.Page) { p.RemoveChatEntry(typingID) })
	if !tk.Current() {
		return
	}

	switch {
	case err == nil:
		answer := strings.TrimSpace(reply.Answer)
		if answer == "" {
			answer = msgEmptyAnswer
		}
		entry := view.ChatEntry{ID: c.newID(), Role: view.ChatBot, Text: answer}
		for _, s := range reply.Sources {
			entry.Sources = append(entry.Sources, view.ChatSource{
				Content: s.Content,
				Source:  s.Source,
				Page:    string(s.Page),
			})
		}
		st.Mutate(func(p *view.Page) { p.AppendChat(entry) })

	case httpclient.IsUnauthorized(err):
		st.Mutate(func(p *view.Page) {
			p.AppendChat(view.ChatEntry{ID: c.newID(), Role: view.ChatNotice, Text: msgSessionExpired})
		})
		st.Expire()

	default:
		st.Mutate(func(p *view.Page) {
			p.AppendChat(view.ChatEntry{ID: c.newID(), Role: view.ChatError, Text: msgGenericError})
		})
	}
}
