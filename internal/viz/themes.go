package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view. Body colours always come
// from the bodies themselves; the theme covers chrome, the field marker and
// bodies drawn without a colour.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Push      lipgloss.Color
	Pull      lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeArcade = Theme{
		Name:      "arcade",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Push:      lipgloss.Color("#ff8800"),
		Pull:      lipgloss.Color("#00aaff"),
		Warning:   lipgloss.Color("#ff0000"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Push:      lipgloss.Color("#ffff00"),
		Pull:      lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Push:      lipgloss.Color("#ffaa00"),
		Pull:      lipgloss.Color("#0088ff"),
		Warning:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Push:      lipgloss.Color("#ffcc00"),
		Pull:      lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeArcade, ThemeRetro, ThemeMinimal, ThemeOcean}
)

// GetTheme returns the named theme, or the first one when the name is
// unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
