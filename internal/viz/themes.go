package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the player. Bodies are drawn in Bodies[i].
type Theme struct {
	Name   string
	Bodies [3]lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Bodies: [3]lipgloss.Color{"#ff0000", "#00aa00", "#0055ff"},
		Accent: lipgloss.Color("86"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Bodies: [3]lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00"},
		Accent: lipgloss.Color("#ff00ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Bodies: [3]lipgloss.Color{"#00ff00", "#88ff88", "#00aa00"},
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Bodies: [3]lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3"},
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{ThemeClassic, ThemeCyberpunk, ThemeRetro, ThemeSunset}
)

// ThemeIndex returns the position of the named theme, or 0.
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

func (t Theme) bodyStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(t.Bodies))
	for i, c := range t.Bodies {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}
