package prefs

import "strings"

// ThemeKey is the preference key holding the saved theme.
const ThemeKey = "theme"

// Theme is the page colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme accepts "dark" or "light" in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// ResolveTheme returns the saved theme, falling back to the terminal's
// background when nothing valid is saved.
func ResolveTheme(store Store, systemDark bool) Theme {
	if saved, ok := store.Get(ThemeKey); ok {
		if theme, ok := ParseTheme(saved); ok {
			return theme
		}
	}
	if systemDark {
		return Dark
	}
	return Light
}

// SaveTheme persists t.
func SaveTheme(store Store, t Theme) error {
	return store.Set(ThemeKey, string(t))
}
