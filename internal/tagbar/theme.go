package tagbar

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the resolved tcell styles for the bar. All styles derive
// from a single accent color so the widget follows the host
// application's palette.
type Theme struct {
	// Bar is the style for the bar background and plain text.
	Bar tcell.Style
	// Chip is the style for a filter chip body.
	Chip tcell.Style
	// ChipKey is the style for the key portion of a chip.
	ChipKey tcell.Style
	// Remove is the style for a chip's remove glyph.
	Remove tcell.Style
	// ClearAll is the style for the clear-all action.
	ClearAll tcell.Style
	// Count is the style for the active-filter count label.
	Count tcell.Style
}

// DefaultAccent is used when no accent color is configured.
const DefaultAccent = "#268bd2"

// NewTheme derives a widget theme from a hex accent color such as
// "#268bd2". An unparsable accent falls back to DefaultAccent.
func NewTheme(accent string) Theme {
	base, err := colorful.Hex(accent)
	if err != nil {
		base, _ = colorful.Hex(DefaultAccent)
	}

	// Chip backgrounds are a darkened accent; the remove glyph leans
	// toward red so it reads as destructive regardless of accent.
	chipBg := darken(base, 0.55)
	keyFg := lighten(base, 0.35)
	removeFg, _ := colorful.Hex("#dc322f")

	barStyle := tcell.StyleDefault

	return Theme{
		Bar:      barStyle,
		Chip:     barStyle.Background(toTCell(chipBg)),
		ChipKey:  barStyle.Background(toTCell(chipBg)).Foreground(toTCell(keyFg)).Bold(true),
		Remove:   barStyle.Background(toTCell(chipBg)).Foreground(toTCell(removeFg)),
		ClearAll: barStyle.Foreground(toTCell(base)).Underline(true),
		Count:    barStyle.Foreground(toTCell(lighten(base, 0.2))),
	}
}

// darken blends a color toward black in Lab space.
func darken(c colorful.Color, amount float64) colorful.Color {
	black := colorful.Color{R: 0, G: 0, B: 0}
	return c.BlendLab(black, amount).Clamped()
}

// lighten blends a color toward white in Lab space.
func lighten(c colorful.Color, amount float64) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, amount).Clamped()
}

// toTCell converts a colorful color to a tcell RGB color.
func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
