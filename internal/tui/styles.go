package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/soham247/stellar-portfolio/internal/theme"
)

// Styles are the lipgloss styles for one theme mode.
type Styles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Tag       lipgloss.Style
	Card      lipgloss.Style
	Strip     lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Help        lipgloss.Style

	Label         lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Success       lipgloss.Style
	Error         lipgloss.Style
}

// NewStyles builds styles from the terminal palette of a theme mode.
func NewStyles(r *lipgloss.Renderer, p theme.Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	return Styles{
		Title:     r.NewStyle().Bold(true).Foreground(c(p.Accent)),
		Heading:   r.NewStyle().Bold(true).Foreground(c(p.Text)).MarginTop(1),
		Text:      r.NewStyle().Foreground(c(p.Text)),
		Secondary: r.NewStyle().Foreground(c(p.Secondary)),
		Accent:    r.NewStyle().Foreground(c(p.Accent)),
		Tag:       r.NewStyle().Foreground(c(p.Tag)),
		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Border)).
			Padding(0, 1),
		Strip: r.NewStyle().Foreground(c(p.Border)),

		TabActive:   r.NewStyle().Bold(true).Foreground(c(p.Accent)).Underline(true).Padding(0, 1),
		TabInactive: r.NewStyle().Foreground(c(p.Secondary)).Padding(0, 1),
		Help:        r.NewStyle().Foreground(c(p.Secondary)).Italic(true),

		Label:         r.NewStyle().Foreground(c(p.Secondary)).Width(9),
		Button:        r.NewStyle().Foreground(c(p.Secondary)).Border(lipgloss.NormalBorder()).BorderForeground(c(p.Border)).Padding(0, 2),
		ButtonFocused: r.NewStyle().Bold(true).Foreground(c(p.Accent)).Border(lipgloss.NormalBorder()).BorderForeground(c(p.Accent)).Padding(0, 2),
		Success:       r.NewStyle().Foreground(c(p.Success)),
		Error:         r.NewStyle().Foreground(c(p.Error)),
	}
}
