package theme

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// BorderStyleUnified is the square box border used by panels and dialogs.
var BorderStyleUnified = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// CreateTableStyles returns the styles of the directory table.
func CreateTableStyles() table.Styles {
	return table.Styles{
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorBrightCyan)).
			BorderBottom(true).
			Bold(true).
			Foreground(lipgloss.Color(ColorBrightCyan)).
			Background(lipgloss.Color(ColorHeaderBg)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorSelectionBg)).
			Bold(true),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)),
	}
}

// CreateHeaderStyle styles the title line.
func CreateHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorBrightGreen)).
		MarginLeft(1)
}

// CreateBreadcrumbStyle styles one breadcrumb segment. Numbered segments
// are the ones reachable with the digit keys.
func CreateBreadcrumbStyle(last bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightBlue))
	if last {
		return style.Bold(true).Foreground(lipgloss.Color(ColorWhite))
	}
	return style
}

// CreateSecondaryTextStyle styles hints and counters.
func CreateSecondaryTextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		Italic(true)
}

// CreateFooterStyle styles the key hint line.
func CreateFooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		MarginLeft(1)
}

// CreateDialogStyle styles floating dialogs such as help and goto.
func CreateDialogStyle(width int, borderColor string) lipgloss.Style {
	if borderColor == "" {
		borderColor = ColorBrightBlue
	}
	return lipgloss.NewStyle().
		Border(BorderStyleUnified).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2).
		Width(width).
		Foreground(lipgloss.Color(ColorWhite))
}

// CreateLoadingStyle styles the spinner line.
func CreateLoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightYellow))
}

// CreateErrorStyle styles listing errors.
func CreateErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightRed))
}
