package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	ColorAccent  = lipgloss.Color("39")
	ColorHeader  = lipgloss.Color("99")
	ColorSubtle  = lipgloss.Color("241")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorOK      = lipgloss.Color("42")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are package-level by convention.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().Bold(true)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	BadgeStyle = lipgloss.NewStyle().Foreground(ColorOK).Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	FocusedHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorAccent)

	FilterCellStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorWarning)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)
