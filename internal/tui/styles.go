package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles for user-facing status messages.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("yellow"))
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("red"))
	PathStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#1565C0")).Foreground(lipgloss.Color("15"))
	LinkStyle    = lipgloss.NewStyle().Underline(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
