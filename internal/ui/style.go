// Package ui holds the terminal styles shared by command output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Success renders a check-marked line.
func Success(msg string) string {
	return successStyle.Render("✓") + " " + msg
}

// Step renders an arrow-marked progress line.
func Step(msg string) string {
	return stepStyle.Render("→") + " " + msg
}

func Warn(msg string) string {
	return warnStyle.Render(msg)
}

func Faint(msg string) string {
	return faintStyle.Render(msg)
}
