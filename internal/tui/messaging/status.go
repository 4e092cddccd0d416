package messaging

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/tui/theme"
)

// MessageType is the severity of a status line message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Color returns the theme color of the message type.
func (t MessageType) Color() string {
	switch t {
	case MessageSuccess:
		return theme.ColorBrightGreen
	case MessageWarning:
		return theme.ColorBrightYellow
	case MessageError:
		return theme.ColorBrightRed
	default:
		return theme.ColorBrightCyan
	}
}

// Icon returns the prefix shown before a message of this type.
func (t MessageType) Icon() string {
	switch t {
	case MessageSuccess:
		return "✅"
	case MessageWarning:
		return "⚠️"
	case MessageError:
		return "❌"
	default:
		return "ℹ️"
	}
}

// StatusManager holds the single status line shown under the table.
type StatusManager interface {
	SetMessage(message string, msgType MessageType)
	ClearMessage()
	GetMessage() (string, MessageType, bool)
	HasMessage() bool
	// Expired reports whether the message is older than ttl.
	Expired(ttl time.Duration) bool
	RenderMessage() string
}

type statusManager struct {
	message string
	msgType MessageType
	setAt   time.Time
	now     func() time.Time
}

// NewStatusManager creates an empty status line.
func NewStatusManager() StatusManager {
	return &statusManager{now: time.Now}
}

func (sm *statusManager) SetMessage(message string, msgType MessageType) {
	sm.message = message
	sm.msgType = msgType
	sm.setAt = sm.now()
	logrus.Debugf("status: %q (type %d)", message, msgType)
}

func (sm *statusManager) ClearMessage() {
	sm.message = ""
}

func (sm *statusManager) GetMessage() (string, MessageType, bool) {
	return sm.message, sm.msgType, sm.message != ""
}

func (sm *statusManager) HasMessage() bool {
	return sm.message != ""
}

func (sm *statusManager) Expired(ttl time.Duration) bool {
	return sm.HasMessage() && sm.now().Sub(sm.setAt) >= ttl
}

func (sm *statusManager) RenderMessage() string {
	if !sm.HasMessage() {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(sm.msgType.Color())).
		Bold(true)
	return style.Render(fmt.Sprintf("%s %s", sm.msgType.Icon(), sm.message))
}
