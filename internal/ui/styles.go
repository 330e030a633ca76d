package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quillhq/quill/internal/document"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorError      = lipgloss.Color("#6d424b") // red
	ColorGet        = lipgloss.Color("#436b77") // blue-teal
	ColorPost       = lipgloss.Color("#3f866b") // green
	ColorPatch      = lipgloss.Color("#c78854") // orange
	ColorDelete     = lipgloss.Color("#a3425a") // red
)

// --- Reusable Styles ---

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

var methodStyles = map[document.Method]lipgloss.Style{
	document.MethodGet:    lipgloss.NewStyle().Foreground(ColorBackground).Background(ColorGet).Bold(true).Padding(0, 1),
	document.MethodPost:   lipgloss.NewStyle().Foreground(ColorBackground).Background(ColorPost).Bold(true).Padding(0, 1),
	document.MethodPatch:  lipgloss.NewStyle().Foreground(ColorBackground).Background(ColorPatch).Bold(true).Padding(0, 1),
	document.MethodDelete: lipgloss.NewStyle().Foreground(ColorBackground).Background(ColorDelete).Bold(true).Padding(0, 1),
}

// MethodStyle returns the pill style for an HTTP verb.
func MethodStyle(m document.Method) lipgloss.Style {
	if s, ok := methodStyles[m]; ok {
		return s
	}
	return methodStyles[document.MethodGet]
}
