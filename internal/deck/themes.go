package deck

// Theme is a named set of card faces.
type Theme struct {
	ID    string
	Name  string
	Faces []string
}

// DefaultThemeID is used whenever an unknown theme id is requested.
const DefaultThemeID = "animals"

var builtinThemes = []Theme{
	{
		ID:   "animals",
		Name: "Animals",
		Faces: []string{
			"🐱", "🐶", "🦊", "🐻", "🐼", "🐨",
			"🐯", "🦁", "🐮", "🐷", "🐸", "🐵",
		},
	},
	{
		ID:   "foods",
		Name: "Foods",
		Faces: []string{
			"🍎", "🍌", "🍇", "🍓", "🍒", "🍑",
			"🥝", "🍍", "🥕", "🌽", "🍞", "🧀",
		},
	},
	{
		ID:   "shapes",
		Name: "Shapes",
		Faces: []string{
			"■", "▲", "●", "◆", "★", "♥",
			"♠", "♣", "♦", "♪", "☀", "☾",
		},
	},
	{
		ID:   "flags",
		Name: "Flags",
		Faces: []string{
			"🇺🇸", "🇬🇧", "🇫🇷", "🇩🇪", "🇯🇵", "🇧🇷",
			"🇨🇦", "🇦🇺", "🇮🇹", "🇪🇸", "🇳🇱", "🇸🇪",
		},
	},
}

// Themes returns all built-in themes in stable order.
func Themes() []Theme {
	out := make([]Theme, len(builtinThemes))
	copy(out, builtinThemes)
	return out
}

// ThemeByID resolves a theme id, falling back to the default theme for
// unknown ids. Theme resolution never fails.
func ThemeByID(id string) Theme {
	for _, t := range builtinThemes {
		if t.ID == id {
			return t
		}
	}
	for _, t := range builtinThemes {
		if t.ID == DefaultThemeID {
			return t
		}
	}
	// Unreachable while the default id names a builtin theme.
	return builtinThemes[0]
}
