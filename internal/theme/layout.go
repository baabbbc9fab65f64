package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayout is returned by LayoutFor for kinds outside the set.
// Callers fall back to the content layout rather than aborting.
var ErrUnknownLayout = errors.New("unknown layout")

// Slide canvas in inches, 16:9.
const (
	SlideWidth  = 10.0
	SlideHeight = 5.625
)

// Kind names one of the fixed slide layouts.
type Kind string

const (
	KindTitle      Kind = "title"
	KindSection    Kind = "section"
	KindContent    Kind = "content"
	KindFeatures   Kind = "features"
	KindData       Kind = "data"
	KindQuote      Kind = "quote"
	KindSplit      Kind = "split"
	KindTimeline   Kind = "timeline"
	KindStat       Kind = "stat"
	KindHeroImage  Kind = "hero_image"
	KindComparison Kind = "comparison"
	KindTeam       Kind = "team"
	KindBullets    Kind = "bullets"
	KindCTA        Kind = "cta"
	KindDashboard  Kind = "dashboard"
)

// KindFor maps a model-produced slide type to a layout kind. Aliases the
// model tends to use are folded in; anything unrecognized falls back to
// the content layout.
func KindFor(slideType string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(slideType))) {
	case KindTitle, KindSection, KindContent, KindFeatures, KindData,
		KindQuote, KindSplit, KindTimeline, KindStat, KindHeroImage,
		KindComparison, KindTeam, KindBullets, KindCTA, KindDashboard:
		return Kind(strings.ToLower(strings.TrimSpace(slideType)))
	case "statistic", "statistics":
		return KindStat
	case "summary", "conclusion":
		return KindBullets
	case "call-to-action", "call_to_action":
		return KindCTA
	case "image":
		return KindHeroImage
	default:
		return KindContent
	}
}

// Rect is a box on the slide canvas, in inches.
type Rect struct {
	X, Y, W, H float64
}

// PlaceholderRole describes what a text region is for.
type PlaceholderRole string

const (
	PlaceholderTitle   PlaceholderRole = "title"
	PlaceholderBody    PlaceholderRole = "body"
	PlaceholderCaption PlaceholderRole = "caption"
)

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// FontRole selects the heading or body font of the active theme.
type FontRole string

const (
	FontHeading FontRole = "heading"
	FontBody    FontRole = "body"
)

// Placeholder is one fillable text region. Placeholders are listed top
// to bottom; the renderer assigns content fields in that order.
type Placeholder struct {
	Role  PlaceholderRole
	Box   Rect
	Size  int
	Bold  bool
	Align Align
	Color ColorRole
	Font  FontRole
}

// Decor is a non-text shape drawn behind the placeholders.
type Decor struct {
	Box      Rect
	Fill     ColorRole
	Border   ColorRole
	BorderPt float64
	Rounded  bool
}

// Layout is one slide design: background, chrome, ordered text regions,
// and an optional image region.
type Layout struct {
	Kind         Kind
	Background   ColorRole
	Decor        []Decor
	Placeholders []Placeholder
	Image        *Rect
}

var layouts = map[Kind]Layout{
	KindTitle: {
		Kind:       KindTitle,
		Background: RolePrimary,
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{1.5, 1.8, 7, 1.5}, Size: 60, Bold: true, Align: AlignCenter, Color: RoleBackground, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{2, 3.5, 6, 0.6}, Size: 24, Align: AlignCenter, Color: RoleBackground, Font: FontBody},
		},
	},
	KindSection: {
		Kind:       KindSection,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{3.5, 3.5, 3, 0.15}, Fill: RoleAccent, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{1, 2, 8, 1.2}, Size: 48, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
		},
	},
	KindContent: {
		Kind:       KindContent,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{5.75, 1.75, 3.5, 3}, Fill: RoleBackgroundAlt, Border: RolePrimary, BorderPt: 2, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignLeft, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{0.75, 1.75, 4.5, 3}, Size: 18, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
		Image: &Rect{5.75, 1.75, 3.5, 3},
	},
	KindFeatures: {
		Kind:       KindFeatures,
		Background: RoleBackgroundAlt,
		Decor: []Decor{
			{Box: Rect{1, 1.5, 8, 3.2}, Fill: RoleBackground, Rounded: true},
			{Box: Rect{1.3, 1.8, 0.6, 0.6}, Fill: RolePrimary, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{1.4, 2.05, 7.2, 2.4}, Size: 16, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindData: {
		Kind:       KindData,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{0.75, 1.75, 8.5, 3.2}, Fill: RoleBackgroundAlt, Border: RolePrimary, BorderPt: 1, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignLeft, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{1.1, 2.05, 7.8, 2.6}, Size: 18, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindQuote: {
		Kind:       KindQuote,
		Background: RoleBackgroundAlt,
		Decor: []Decor{
			{Box: Rect{1.5, 1.5, 7, 2.5}, Fill: RoleBackground, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{2, 1.9, 6, 1.5}, Size: 28, Align: AlignCenter, Color: RoleText, Font: FontHeading},
			{Role: PlaceholderCaption, Box: Rect{2, 3.5, 6, 0.4}, Size: 16, Align: AlignCenter, Color: RoleTextLight, Font: FontBody},
		},
	},
	KindSplit: {
		Kind:       KindSplit,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{0, 0, 5, SlideHeight}, Fill: RolePrimary},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 1.2, 3.5, 1.5}, Size: 28, Bold: true, Align: AlignLeft, Color: RoleBackground, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{5.75, 1.2, 3.5, 3}, Size: 18, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindTimeline: {
		Kind:       KindTimeline,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{1.5, 3, 7, 0.08}, Fill: RoleSecondary, Rounded: true},
			{Box: Rect{1.85, 2.85, 0.3, 0.3}, Fill: RolePrimary, Rounded: true},
			{Box: Rect{3.65, 2.85, 0.3, 0.3}, Fill: RolePrimary, Rounded: true},
			{Box: Rect{5.45, 2.85, 0.3, 0.3}, Fill: RolePrimary, Rounded: true},
			{Box: Rect{7.25, 2.85, 0.3, 0.3}, Fill: RolePrimary, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{1.2, 3.5, 7.6, 1.7}, Size: 14, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindStat: {
		Kind:       KindStat,
		Background: RoleBackground,
		Placeholders: []Placeholder{
			{Role: PlaceholderBody, Box: Rect{2, 1.5, 6, 1.8}, Size: 96, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderCaption, Box: Rect{2, 3.5, 6, 0.8}, Size: 24, Align: AlignCenter, Color: RoleText, Font: FontBody},
			{Role: PlaceholderCaption, Box: Rect{2.5, 4.4, 5, 0.5}, Size: 16, Align: AlignCenter, Color: RoleTextLight, Font: FontBody},
		},
	},
	KindHeroImage: {
		Kind:       KindHeroImage,
		Background: RoleSecondary,
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{1.5, 2, 7, 1.5}, Size: 48, Bold: true, Align: AlignCenter, Color: RoleBackground, Font: FontHeading},
		},
		Image: &Rect{0, 0, SlideWidth, SlideHeight},
	},
	KindComparison: {
		Kind:       KindComparison,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{1, 1.3, 8, 3.2}, Fill: RoleBackgroundAlt, Rounded: true},
			{Box: Rect{1, 1.3, 8, 0.5}, Fill: RolePrimary},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{1.3, 2.05, 7.4, 2.25}, Size: 14, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindTeam: {
		Kind:       KindTeam,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{1.2, 1.6, 7.6, 3.2}, Fill: RoleBackgroundAlt, Rounded: true},
			{Box: Rect{1.5, 1.9, 0.8, 0.8}, Fill: RoleAccent, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{2.5, 2, 6, 2.6}, Size: 16, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindBullets: {
		Kind:       KindBullets,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{1.5, 1.5, 7, 3}, Fill: RoleBackgroundAlt, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignLeft, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{2, 1.9, 6.2, 2.4}, Size: 18, Align: AlignLeft, Color: RoleText, Font: FontBody},
		},
	},
	KindCTA: {
		Kind:       KindCTA,
		Background: RolePrimary,
		Decor: []Decor{
			{Box: Rect{3.5, 3.2, 3, 0.6}, Fill: RoleAccent, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{1.5, 1.5, 7, 1.2}, Size: 44, Bold: true, Align: AlignCenter, Color: RoleBackground, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{3.5, 3.25, 3, 0.5}, Size: 22, Bold: true, Align: AlignCenter, Color: RoleBackground, Font: FontHeading},
		},
	},
	KindDashboard: {
		Kind:       KindDashboard,
		Background: RoleBackground,
		Decor: []Decor{
			{Box: Rect{1, 1.5, 4, 3}, Fill: RoleBackgroundAlt, Border: RolePrimary, BorderPt: 1, Rounded: true},
			{Box: Rect{5.3, 1.5, 3.7, 3}, Fill: RoleBackgroundAlt, Border: RoleSecondary, BorderPt: 1, Rounded: true},
		},
		Placeholders: []Placeholder{
			{Role: PlaceholderTitle, Box: Rect{0.75, 0.75, 8.5, 0.6}, Size: 36, Bold: true, Align: AlignCenter, Color: RolePrimary, Font: FontHeading},
			{Role: PlaceholderBody, Box: Rect{1.3, 1.8, 3.4, 2.4}, Size: 14, Align: AlignLeft, Color: RoleText, Font: FontBody},
			{Role: PlaceholderCaption, Box: Rect{5.6, 1.8, 3.1, 2.4}, Size: 14, Align: AlignLeft, Color: RoleTextLight, Font: FontBody},
		},
		Image: &Rect{5.3, 1.5, 3.7, 3},
	},
}

// LayoutFor returns the layout for a kind.
func LayoutFor(kind Kind) (Layout, error) {
	l, ok := layouts[kind]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, string(kind))
	}
	return l, nil
}

// Kinds lists the layout kinds in catalog order.
func Kinds() []Kind {
	return []Kind{
		KindTitle, KindSection, KindContent, KindFeatures, KindData,
		KindQuote, KindSplit, KindTimeline, KindStat, KindHeroImage,
		KindComparison, KindTeam, KindBullets, KindCTA, KindDashboard,
	}
}
