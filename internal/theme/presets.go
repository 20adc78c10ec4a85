package theme

import (
	"maps"
	"slices"
)

// Mode is the brightness family of a preset.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// Font describes the typeface a host should use. Terminal hosts only honor
// Bold; editor widgets use all three fields.
type Font struct {
	Family string
	Size   int
	Bold   bool
}

// DefaultFont is shared by every built-in preset.
var DefaultFont = Font{Family: "Consolas", Size: 14, Bold: true}

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	Mode        Mode
	// Partner is the preset Toggle switches to.
	Partner string
	Font    Font
	Colors  map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"light":            LightPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset reproduces the classic editor palette: white text on a
// near-black page.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Classic high-saturation palette on a dark page",
	Mode:        ModeDark,
	Partner:     "light",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#FFFFFF",
		TokenKeyword:  "#0000FF",
		TokenFunction: "#FF0000",
		TokenComment:  "#00FF00",
		TokenOperator: "#FF8000",
		TokenBracket:  "#FF00FF",
		TokenModule:   "#FFBF00",
		TokenPaper:    "#1D1C1C",
	},
}

var LightPreset = Preset{
	Name:        "light",
	Description: "Default palette darkened for a white page",
	Mode:        ModeLight,
	Partner:     "default",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#1D1C1C",
		TokenKeyword:  "#0000C0",
		TokenFunction: "#C00000",
		TokenComment:  "#008000",
		TokenOperator: "#C05800",
		TokenBracket:  "#A000A0",
		TokenModule:   "#9A7000",
		TokenPaper:    "#FFFFFF",
	},
}

// CatppuccinMochaPreset uses the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Soothing pastel theme (dark)",
	Mode:        ModeDark,
	Partner:     "catppuccin-latte",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#CDD6F4", // text
		TokenKeyword:  "#CBA6F7", // mauve
		TokenFunction: "#89B4FA", // blue
		TokenComment:  "#6C7086", // overlay0
		TokenOperator: "#89DCEB", // sky
		TokenBracket:  "#9399B2", // overlay2
		TokenModule:   "#F9E2AF", // yellow
		TokenPaper:    "#1E1E2E", // base
	},
}

// CatppuccinLattePreset uses the Catppuccin Latte palette.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Soothing pastel theme (light)",
	Mode:        ModeLight,
	Partner:     "catppuccin-mocha",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#4C4F69",
		TokenKeyword:  "#8839EF",
		TokenFunction: "#1E66F5",
		TokenComment:  "#9CA0B0",
		TokenOperator: "#04A5E5",
		TokenBracket:  "#7C7F93",
		TokenModule:   "#DF8E1D",
		TokenPaper:    "#EFF1F5",
	},
}

var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Mode:        ModeDark,
	Partner:     "light",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#F8F8F2",
		TokenKeyword:  "#FF79C6",
		TokenFunction: "#50FA7B",
		TokenComment:  "#6272A4",
		TokenOperator: "#FFB86C",
		TokenBracket:  "#BD93F9",
		TokenModule:   "#8BE9FD",
		TokenPaper:    "#282A36",
	},
}

// NordPreset uses the arctic Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish color palette",
	Mode:        ModeDark,
	Partner:     "light",
	Font:        DefaultFont,
	Colors: map[ColorToken]string{
		TokenRegular:  "#D8DEE9", // snow storm
		TokenKeyword:  "#81A1C1", // frost
		TokenFunction: "#88C0D0",
		TokenComment:  "#616E88",
		TokenOperator: "#B48EAD", // aurora purple
		TokenBracket:  "#ECEFF4",
		TokenModule:   "#8FBCBB",
		TokenPaper:    "#2E3440", // polar night
	},
}
