package main

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	root         lipgloss.Style
	header       lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	panel        lipgloss.Style
	panelTitle   lipgloss.Style
	footer       lipgloss.Style
	status       lipgloss.Style
	errorStatus  lipgloss.Style
	warnStatus   lipgloss.Style
	inputPanel   lipgloss.Style
	helpText     lipgloss.Style
	online       lipgloss.Style
	offline      lipgloss.Style
	checking     lipgloss.Style
	docSelect    lipgloss.Style
	docActive    lipgloss.Style
	roles        map[string]lipgloss.Style
	bannerWarn   lipgloss.Style
	bannerError  lipgloss.Style
	attributeKey lipgloss.Style
}

func newTheme() uiTheme {
	pink := lipgloss.Color("#ff71ce")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	amber := lipgloss.Color("#ffd166")
	bg := lipgloss.Color("#120924")
	panelBg := lipgloss.Color("#1b0f35")
	text := lipgloss.Color("#f3f3ff")
	muted := lipgloss.Color("#9ca3d8")

	return uiTheme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Background(pink).
			Foreground(lipgloss.Color("#22062f")).
			Bold(true).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Background(lipgloss.Color("#2a184a")).
			Foreground(muted).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(pink).Bold(true),
		warnStatus:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		inputPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		helpText: lipgloss.NewStyle().Foreground(muted),
		online:   lipgloss.NewStyle().Foreground(mint).Bold(true),
		offline:  lipgloss.NewStyle().Foreground(pink).Bold(true),
		checking: lipgloss.NewStyle().Foreground(amber).Bold(true),
		docSelect: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22062f")).
			Background(pink).
			Bold(true),
		docActive: lipgloss.NewStyle().Foreground(mint).Bold(true),
		roles: map[string]lipgloss.Style{
			"human":     lipgloss.NewStyle().Foreground(mint).Bold(true),
			"assistant": lipgloss.NewStyle().Foreground(blue).Bold(true),
			"system":    lipgloss.NewStyle().Foreground(muted).Bold(true),
		},
		bannerWarn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e65100")).
			Background(lipgloss.Color("#fff3e0")).
			Padding(0, 1),
		bannerError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d32f2f")).
			Background(lipgloss.Color("#fff3f3")).
			Padding(0, 1),
		attributeKey: lipgloss.NewStyle().Foreground(blue),
	}
}
