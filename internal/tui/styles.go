package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/csheth/folio/internal/prefs"
)

// palette is the set of colours one theme renders with. Background is the
// colour faded elements blend toward.
type palette struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Error      string
	Success    string
	Info       string
}

var palettes = map[prefs.Theme]palette{
	prefs.Dark: {
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Accent:     "#ff8c00",
		Error:      "#f7768e",
		Success:    "#9ece6a",
		Info:       "#7dcfff",
	},
	prefs.Light: {
		Background: "#fafafa",
		Foreground: "#24283b",
		Muted:      "#8c8fa1",
		Accent:     "#d35400",
		Error:      "#c0392b",
		Success:    "#2e7d32",
		Info:       "#1565c0",
	},
}

var (
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	pulseStyle     = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// pageStyles are the styles derived from the active palette.
type pageStyles struct {
	palette palette

	name          lipgloss.Style
	tagline       lipgloss.Style
	sectionHeader lipgloss.Style
	text          lipgloss.Style
	helper        lipgloss.Style
	errorText     lipgloss.Style
	button        lipgloss.Style
	focused       lipgloss.Style
	disabled      lipgloss.Style
	tag           lipgloss.Style
	label         lipgloss.Style
	invalidLabel  lipgloss.Style
}

func newPageStyles(theme prefs.Theme) pageStyles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[prefs.Dark]
	}
	return pageStyles{
		palette:       p,
		name:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		tagline:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(p.Muted)),
		sectionHeader: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(p.Accent)),
		text:          lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground)),
		helper:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		errorText:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		button:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground)),
		focused:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Background)).Background(lipgloss.Color(p.Accent)),
		disabled:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(p.Muted)),
		tag:           lipgloss.NewStyle().Foreground(lipgloss.Color(p.Info)),
		label:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Foreground)),
		invalidLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Error)),
	}
}

// fade renders text in fg blended toward the background by opacity. A fully
// transparent element still takes up its lines.
func (s pageStyles) fade(text, fg string, opacity float64) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(blend(s.palette.Background, fg, opacity))).Render(text)
}

func blend(bg, fg string, opacity float64) string {
	from, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	to, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	switch {
	case opacity <= 0:
		return bg
	case opacity >= 1:
		return fg
	}
	return from.BlendLab(to, opacity).Clamped().Hex()
}
