// Package theme holds the fixed catalog of visual themes and slide
// layouts. Layouts are plain value types (placeholder roles plus
// geometry); colors are referenced by palette role and resolved against
// a theme at emit time.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme is returned by Resolve for keys outside the catalog.
// Callers fall back to Default rather than aborting.
var ErrUnknownTheme = errors.New("unknown theme")

// DefaultKey is the theme used when no valid preference is given.
const DefaultKey = "modern_blue"

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// ARGB renders the color as an opaque AARRGGBB hex string.
func (c Color) ARGB() string {
	return fmt.Sprintf("FF%02X%02X%02X", c.R, c.G, c.B)
}

// Hex renders the color as a #rrggbb CSS literal.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorRole names a palette entry so layouts stay theme independent.
type ColorRole string

const (
	RolePrimary       ColorRole = "primary"
	RoleSecondary     ColorRole = "secondary"
	RoleAccent        ColorRole = "accent"
	RoleBackground    ColorRole = "bg"
	RoleBackgroundAlt ColorRole = "bg_alt"
	RoleText          ColorRole = "text"
	RoleTextLight     ColorRole = "text_light"
)

// Theme is one fixed palette plus its font pair.
type Theme struct {
	Key           string
	Name          string
	Primary       Color
	Secondary     Color
	Accent        Color
	Background    Color
	BackgroundAlt Color
	Text          Color
	TextLight     Color
	HeadingFont   string
	BodyFont      string
}

// Color resolves a palette role. Unknown roles resolve to the text color.
func (t Theme) Color(role ColorRole) Color {
	switch role {
	case RolePrimary:
		return t.Primary
	case RoleSecondary:
		return t.Secondary
	case RoleAccent:
		return t.Accent
	case RoleBackground:
		return t.Background
	case RoleBackgroundAlt:
		return t.BackgroundAlt
	case RoleTextLight:
		return t.TextLight
	default:
		return t.Text
	}
}

var catalog = []Theme{
	{
		Key: "modern_blue", Name: "Modern Blue",
		Primary: Color{41, 98, 255}, Secondary: Color{21, 101, 192}, Accent: Color{0, 188, 212},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{245, 247, 250},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Calibri", BodyFont: "Calibri",
	},
	{
		Key: "elegant_purple", Name: "Elegant Purple",
		Primary: Color{103, 58, 183}, Secondary: Color{142, 36, 170}, Accent: Color{255, 64, 129},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{248, 245, 250},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Georgia", BodyFont: "Georgia",
	},
	{
		Key: "corporate_green", Name: "Corporate Green",
		Primary: Color{27, 94, 32}, Secondary: Color{56, 142, 60}, Accent: Color{255, 193, 7},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{245, 248, 245},
		Text: Color{33, 33, 33}, TextLight: Color{97, 97, 97},
		HeadingFont: "Arial", BodyFont: "Arial",
	},
	{
		Key: "vibrant_orange", Name: "Vibrant Orange",
		Primary: Color{230, 81, 0}, Secondary: Color{251, 140, 0}, Accent: Color{255, 87, 34},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{255, 248, 245},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Verdana", BodyFont: "Verdana",
	},
	{
		Key: "dark_professional", Name: "Dark Professional",
		Primary: Color{224, 224, 224}, Secondary: Color{189, 189, 189}, Accent: Color{79, 195, 247},
		Background: Color{33, 33, 33}, BackgroundAlt: Color{48, 48, 48},
		Text: Color{245, 245, 245}, TextLight: Color{189, 189, 189},
		HeadingFont: "Segoe UI", BodyFont: "Segoe UI",
	},
	{
		Key: "minimal_gray", Name: "Minimal Gray",
		Primary: Color{66, 66, 66}, Secondary: Color{97, 97, 97}, Accent: Color{255, 152, 0},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{250, 250, 250},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Helvetica", BodyFont: "Helvetica",
	},
	{
		Key: "ocean_teal", Name: "Ocean Teal",
		Primary: Color{0, 121, 107}, Secondary: Color{0, 150, 136}, Accent: Color{255, 235, 59},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{224, 247, 250},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Trebuchet MS", BodyFont: "Trebuchet MS",
	},
	{
		Key: "sunset_red", Name: "Sunset Red",
		Primary: Color{183, 28, 28}, Secondary: Color{211, 47, 47}, Accent: Color{255, 193, 7},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{255, 245, 245},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Garamond", BodyFont: "Garamond",
	},
	{
		Key: "royal_indigo", Name: "Royal Indigo",
		Primary: Color{26, 35, 126}, Secondary: Color{48, 63, 159}, Accent: Color{255, 215, 64},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{232, 234, 246},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Cambria", BodyFont: "Cambria",
	},
	{
		Key: "forest_brown", Name: "Forest Brown",
		Primary: Color{62, 39, 35}, Secondary: Color{93, 64, 55}, Accent: Color{139, 195, 74},
		Background: Color{255, 255, 255}, BackgroundAlt: Color{245, 245, 240},
		Text: Color{33, 33, 33}, TextLight: Color{117, 117, 117},
		HeadingFont: "Times New Roman", BodyFont: "Times New Roman",
	},
}

// Resolve looks up a theme by catalog key.
func Resolve(key string) (Theme, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, t := range catalog {
		if t.Key == key {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, key)
}

// Default returns the fallback theme.
func Default() Theme {
	t, _ := Resolve(DefaultKey)
	return t
}

// Keys lists the catalog keys in their fixed order.
func Keys() []string {
	keys := make([]string, len(catalog))
	for i, t := range catalog {
		keys[i] = t.Key
	}
	return keys
}

// All returns the catalog in its fixed order.
func All() []Theme {
	out := make([]Theme, len(catalog))
	copy(out, catalog)
	return out
}
