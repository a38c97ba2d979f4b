package main

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#2563EB")
	muted  = lipgloss.Color("#6B7280")
	red    = lipgloss.Color("#EF4444")
	green  = lipgloss.Color("#10B981")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(10)

	okStyle = lipgloss.NewStyle().
		Foreground(green)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(red)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}
