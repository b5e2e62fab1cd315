package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name   string
	Trail  lipgloss.Color
	Rod    lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Warn   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "minimal",
		Trail:  lipgloss.Color("#0088ff"),
		Rod:    lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#444444"),
		Warn:   lipgloss.Color("#ffaa00"),
	},
	{
		Name:   "cyberpunk",
		Trail:  lipgloss.Color("#ff00ff"),
		Rod:    lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Border: lipgloss.Color("#444466"),
		Warn:   lipgloss.Color("#ff8800"),
	},
	{
		Name:   "retro",
		Trail:  lipgloss.Color("#00cc00"),
		Rod:    lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#003300"),
		Warn:   lipgloss.Color("#ffff00"),
	},
	{
		Name:   "ocean",
		Trail:  lipgloss.Color("#00a8cc"),
		Rod:    lipgloss.Color("#e0f0ff"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#224466"),
		Warn:   lipgloss.Color("#ffcc00"),
	},
}

// ThemeIndex returns the position of the named theme, or 0 when unknown.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
