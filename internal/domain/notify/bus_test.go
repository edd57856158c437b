package notify

import (
	"fmt"
	"testing"
	"time"

	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_NotifyStacksIndependentToasts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	b := &Bus{
		now:   func() time.Time { return now },
		newID: func() string { n++; return fmt.Sprintf("t%d", n) },
	}
	st := session.NewState("s")

	b.Success(st, "Pet added")
	now = now.Add(time.Second)
	b.Error(st, "Failed to delete")

	toasts := st.Page().Toasts
	require.Len(t, toasts, 2)

	assert.Equal(t, "t1", toasts[0].ID)
	assert.Equal(t, view.SeveritySuccess, toasts[0].Severity)
	assert.Equal(t, 3*time.Second, toasts[0].HideAt.Sub(toasts[0].ShownAt))
	assert.Equal(t, 3300*time.Millisecond, toasts[0].RemoveAt.Sub(toasts[0].ShownAt))

	assert.Equal(t, "t2", toasts[1].ID)
	assert.Equal(t, view.SeverityError, toasts[1].Severity)
	assert.True(t, toasts[1].ShownAt.After(toasts[0].ShownAt), "each toast has its own timer")
}

func TestBus_IgnoresEmptyMessage(t *testing.T) {
	st := session.NewState("s")
	NewBus().Notify(st, "   ", view.SeverityInfo)
	assert.Empty(t, st.Page().Toasts)
}

func TestBus_DefaultSeverityIsInfo(t *testing.T) {
	st := session.NewState("s")
	NewBus().Notify(st, "hello", "")
	require.Len(t, st.Page().Toasts, 1)
	assert.Equal(t, view.SeverityInfo, st.Page().Toasts[0].Severity)
}
