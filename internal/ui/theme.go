package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Display    lipgloss.Color
	Danger     lipgloss.Color
	KeyFace    lipgloss.Color
	KeyDark    lipgloss.Color
	KeyLit     lipgloss.Color
}

// The default face: a calculator pretending nothing is wrong.
var normalPalette = palette{
	Background: lipgloss.Color("#10141a"),
	Surface:    lipgloss.Color("#1b212b"),
	Text:       lipgloss.Color("#d8dee9"),
	Muted:      lipgloss.Color("#616e88"),
	Accent:     lipgloss.Color("#88c0d0"),
	AccentAlt:  lipgloss.Color("#b48ead"),
	Border:     lipgloss.Color("#3b4252"),
	Display:    lipgloss.Color("#a3be8c"),
	Danger:     lipgloss.Color("#bf616a"),
	KeyFace:    lipgloss.Color("#2e3440"),
	KeyDark:    lipgloss.Color("#14181f"),
	KeyLit:     lipgloss.Color("#ebcb8b"),
}

// The story can flip the screen; same hues, swapped ground.
var invertedPalette = palette{
	Background: lipgloss.Color("#d8dee9"),
	Surface:    lipgloss.Color("#c2c9d6"),
	Text:       lipgloss.Color("#10141a"),
	Muted:      lipgloss.Color("#616e88"),
	Accent:     lipgloss.Color("#5e81ac"),
	AccentAlt:  lipgloss.Color("#b48ead"),
	Border:     lipgloss.Color("#aab2c0"),
	Display:    lipgloss.Color("#4c7a3d"),
	Danger:     lipgloss.Color("#bf616a"),
	KeyFace:    lipgloss.Color("#aab2c0"),
	KeyDark:    lipgloss.Color("#d0d6e0"),
	KeyLit:     lipgloss.Color("#d08770"),
}

func paletteFor(inverted bool) palette {
	if inverted {
		return invertedPalette
	}
	return normalPalette
}
