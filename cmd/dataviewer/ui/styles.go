// Package ui provides the visual styling for the dataviewer CLI: lipgloss
// styles for progress lines and a bubbletea spinner shown while the model
// call is outstanding.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors.
var (
	Success = lipgloss.Color("#8BC34A") // lime green
	Info    = lipgloss.Color("#2196F3") // blue
	Warning = lipgloss.Color("#FFC107") // yellow
	Danger  = lipgloss.Color("#e53935") // red
	Muted   = lipgloss.Color("#808080")
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	WarnStyle    = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)
