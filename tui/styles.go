// Package tui is the terminal client: the landing search with rotating
// suggestions and a card browser over the explore catalog.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#101F38")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#8a94a6")
	colorBorder  = lipgloss.Color("#2a3850")
	colorPremium = lipgloss.Color("#FFC107")
	colorNew     = lipgloss.Color("#2196F3")
	colorNotice  = lipgloss.Color("#e57373")
)

// Styles groups every style used by the pages.
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Pill         lipgloss.Style
	ActivePill   lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	Price        lipgloss.Style
	PremiumBadge lipgloss.Style
	NewBadge     lipgloss.Style
	Muted        lipgloss.Style
	Notice       lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the dark palette.
func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Tab:          lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted),
		ActiveTab:    lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(colorPrimary).Background(colorAccent),
		Pill:         lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted),
		ActivePill:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(colorAccent),
		Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1).Width(38),
		CardTitle:    lipgloss.NewStyle().Bold(true),
		Price:        lipgloss.NewStyle().Foreground(colorAccent),
		PremiumBadge: lipgloss.NewStyle().Bold(true).Foreground(colorPremium),
		NewBadge:     lipgloss.NewStyle().Bold(true).Foreground(colorNew),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Notice:       lipgloss.NewStyle().Foreground(colorNotice).MarginTop(1),
		Help:         lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
