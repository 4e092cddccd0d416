package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HaiFongPan/dirnav/internal/tui/theme"
)

func TestStatusManager(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sm := &statusManager{now: func() time.Time { return clock }}

	assert.False(t, sm.HasMessage())
	assert.Equal(t, "", sm.RenderMessage())
	assert.False(t, sm.Expired(time.Second))

	sm.SetMessage("Copied /Users/alice", MessageSuccess)
	msg, typ, ok := sm.GetMessage()
	assert.True(t, ok)
	assert.Equal(t, "Copied /Users/alice", msg)
	assert.Equal(t, MessageSuccess, typ)
	assert.Contains(t, sm.RenderMessage(), "Copied /Users/alice")

	assert.False(t, sm.Expired(3*time.Second))
	clock = clock.Add(3 * time.Second)
	assert.True(t, sm.Expired(3*time.Second))

	sm.ClearMessage()
	assert.False(t, sm.HasMessage())
}

func TestMessageTypeColors(t *testing.T) {
	assert.Equal(t, theme.ColorBrightCyan, MessageInfo.Color())
	assert.Equal(t, theme.ColorBrightGreen, MessageSuccess.Color())
	assert.Equal(t, theme.ColorBrightYellow, MessageWarning.Color())
	assert.Equal(t, theme.ColorBrightRed, MessageError.Color())
	assert.Equal(t, "❌", MessageError.Icon())
}
