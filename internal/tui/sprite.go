package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mochi/internal/mascot"
)

var faces = map[mascot.Expression]string{
	mascot.ExpressionIdle:      "(·ω·)",
	mascot.ExpressionSurprised: "(°o°)",
	mascot.ExpressionHappy:     "(≧▽≦)",
	mascot.ExpressionDizzy:     "(@_@)",
	mascot.ExpressionLove:      "(♥‿♥)",
	mascot.ExpressionSleeping:  "(-_-)",
}

// Face returns the rendered face for an expression.
func Face(e mascot.Expression) string {
	if f, ok := faces[e]; ok {
		return f
	}
	return faces[mascot.ExpressionIdle]
}

// SpriteWidth is the face's footprint in cells, kept in sync with the
// controller's body size.
const SpriteWidth = 5

type Theme struct {
	Accent  lipgloss.Style
	Text    lipgloss.Style
	Dim     lipgloss.Style
	Dimmer  lipgloss.Style
	Mascot  map[mascot.Expression]lipgloss.Style
	TrailFg lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"neon": {
		Accent: fg("86"),
		Text:   fg("255"),
		Dim:    fg("242"),
		Dimmer: fg("238"),
		Mascot: map[mascot.Expression]lipgloss.Style{
			mascot.ExpressionIdle:      fg("255"),
			mascot.ExpressionSurprised: fg("220"),
			mascot.ExpressionHappy:     fg("82"),
			mascot.ExpressionDizzy:     fg("213"),
			mascot.ExpressionLove:      fg("205"),
			mascot.ExpressionSleeping:  fg("242"),
		},
		TrailFg: fg("30"),
	},
	"mono": {
		Accent: fg("255"),
		Text:   fg("250"),
		Dim:    fg("244"),
		Dimmer: fg("238"),
		Mascot: map[mascot.Expression]lipgloss.Style{
			mascot.ExpressionIdle:      fg("250"),
			mascot.ExpressionSurprised: fg("255"),
			mascot.ExpressionHappy:     fg("255"),
			mascot.ExpressionDizzy:     fg("244"),
			mascot.ExpressionLove:      fg("255"),
			mascot.ExpressionSleeping:  fg("238"),
		},
		TrailFg: fg("236"),
	},
}

// GetTheme returns the named theme, falling back to neon.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["neon"]
}
