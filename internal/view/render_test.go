package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name PageName, p Page, toasts []Toast) string {
	t.Helper()
	r := MustRenderer()
	r.now = func() time.Time { return time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, p, toasts))
	return buf.String()
}

func TestRender_PostCardEscapesContent(t *testing.T) {
	p := Page{Posts: PostList{Loaded: true, Cards: []PostCard{{
		ID:       1,
		Title:    "Hello",
		Content:  "<script>x</script>",
		PostType: "experience",
		Author:   "ana",
	}}}}

	html := render(t, PageDashboard, p, nil)

	assert.Contains(t, html, "Hello")
	assert.Contains(t, html, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, html, "<script>x</script>")
}

func TestRender_PetFieldsEscaped(t *testing.T) {
	p := Page{Auth: Authenticated, Username: `<b>ana</b>`, Pets: PetList{Loaded: true, Cards: []PetCard{{
		ID:           3,
		Name:         `Rex" onmouseover="alert(1)`,
		Species:      "dog",
		MedicalNotes: "<img src=x onerror=alert(1)>",
	}}}}

	html := render(t, PageDashboard, p, nil)

	assert.NotContains(t, html, "<img src=x")
	assert.NotContains(t, html, `" onmouseover="`)
	assert.NotContains(t, html, "<b>ana</b>")
	assert.Contains(t, html, "&lt;b&gt;ana&lt;/b&gt;")
}

func TestRender_EmptyStates(t *testing.T) {
	p := Page{
		Auth:  Authenticated,
		Pets:  PetList{Loaded: true, Empty: "No pets added yet."},
		Posts: PostList{Loaded: true, Empty: "No community posts yet."},
	}

	html := render(t, PageDashboard, p, nil)

	assert.Contains(t, html, "No pets added yet.")
	assert.Contains(t, html, "No community posts yet.")
	assert.NotContains(t, html, `class="card pet-card"`)
	assert.NotContains(t, html, `class="card post-card"`)
}

func TestRender_AuthRegionsToggle(t *testing.T) {
	out := render(t, PageIndex, Page{Auth: Unauthenticated}, nil)
	assert.Contains(t, out, `id="user-menu" class="hidden"`)
	assert.Contains(t, out, `id="auth-buttons" class=""`)

	in := render(t, PageIndex, Page{Auth: Authenticated, Username: "ana"}, nil)
	assert.Contains(t, in, `id="auth-buttons" class="hidden"`)
	assert.Contains(t, in, `id="user-menu" class=""`)
}

func TestRender_ChatDisabledInputAndTyping(t *testing.T) {
	p := Page{Chat: Chat{
		InputDisabled: true,
		Entries: []ChatEntry{
			{ID: "1", Role: ChatUser, Text: "is chocolate ok?"},
			{ID: "2", Role: ChatTyping},
		},
	}}

	html := render(t, PageIndex, p, nil)

	assert.Contains(t, html, "is chocolate ok?")
	assert.Contains(t, html, "typing-indicator")
	assert.True(t, strings.Contains(html, "disabled"))
}

func TestRender_ToastsCarryTimers(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	toasts := []Toast{{
		ID:       "t1",
		Message:  "Pet added <3",
		Severity: SeveritySuccess,
		ShownAt:  now,
		HideAt:   now.Add(ToastVisible),
		RemoveAt: now.Add(ToastVisible + ToastExit),
	}}

	html := render(t, PageIndex, Page{}, toasts)

	assert.Contains(t, html, `class="toast toast-success"`)
	assert.Contains(t, html, `data-visible-ms="3000"`)
	assert.Contains(t, html, `data-exit-ms="300"`)
	assert.Contains(t, html, "Pet added &lt;3")
}

func TestRender_DelayedRedirect(t *testing.T) {
	p := Page{Redirect: &Redirect{URL: "/", After: 2 * time.Second}}
	html := render(t, PageDashboard, p, nil)
	assert.Contains(t, html, `http-equiv="refresh" content="2;url=/"`)
}

func TestPage_TakeToastsDropsExpiredAndDrains(t *testing.T) {
	now := time.Now()
	p := Page{Toasts: []Toast{
		{ID: "old", RemoveAt: now.Add(-time.Millisecond)},
		{ID: "new", RemoveAt: now.Add(time.Second)},
	}}

	got := p.TakeToasts(now)

	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
	assert.Empty(t, p.Toasts)
}

func TestPage_CloneIsDeep(t *testing.T) {
	p := Page{Pets: PetList{Cards: []PetCard{{ID: 1, Name: "Milo"}}}}
	c := p.Clone()
	c.Pets.Cards[0].Name = "Changed"
	assert.Equal(t, "Milo", p.Pets.Cards[0].Name)
}

func TestPage_SetUnauthenticatedClearsPrivateRegions(t *testing.T) {
	p := Page{Auth: Authenticated, Username: "ana", Pets: PetList{Loaded: true, Cards: []PetCard{{ID: 1}}}, PetModal: PetModal{Open: true}}
	p.SetUnauthenticated()
	assert.Equal(t, Unauthenticated, p.Auth)
	assert.Empty(t, p.Username)
	assert.Empty(t, p.Pets.Cards)
	assert.False(t, p.PetModal.Open)
}
