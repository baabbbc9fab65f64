// Package render assigns slide content to layout placeholders and parses
// inline bold markup. Its output is theme independent; emitters resolve
// the color and font roles against the chosen theme.
package render

import (
	"strings"

	"slidecraft/internal/deck"
	"slidecraft/internal/theme"
)

// MaxBullets is the most bullet paragraphs a single body placeholder
// shows. Extra bullets are dropped silently.
const MaxBullets = 6

// Span is a run of text, plain or bold.
type Span struct {
	Text string
	Bold bool
}

// Spans splits inline **bold** markup into alternating runs. Matched
// marker pairs produce bold runs, unmatched markers stay literal text,
// and empty runs are dropped. Adjacent runs with equal weight are merged.
func Spans(s string) []Span {
	parts := strings.Split(s, "**")
	if len(parts) == 1 {
		if s == "" {
			return nil
		}
		return []Span{{Text: s}}
	}

	// An even part count means an odd number of markers: the final
	// marker has no partner and is kept as literal text.
	unmatched := len(parts)%2 == 0

	var spans []Span
	for i, p := range parts {
		bold := i%2 == 1
		if unmatched && i == len(parts)-1 {
			p = "**" + p
			bold = false
		}
		if p == "" {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].Bold == bold {
			spans[n-1].Text += p
			continue
		}
		spans = append(spans, Span{Text: p, Bold: bold})
	}
	return spans
}

// PlainText flattens spans back to their unstyled text.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Region is one filled placeholder: the layout box it occupies, the
// content field that filled it, and one paragraph of spans per line.
type Region struct {
	Placeholder theme.Placeholder
	Field       string
	Paragraphs  [][]Span
}

// Slide is a fully composed slide ready for an emitter.
type Slide struct {
	Number   int
	Kind     theme.Kind
	Layout   theme.Layout
	Regions  []Region
	Notes    string
	HasImage bool
}

// Compose assigns the slide's content fields to its layout's
// placeholders, top to bottom. The first placeholder takes the title
// when present; the next takes subtitle, else bullets (one paragraph
// each, capped at MaxBullets), else text, else stat; description and
// context take further placeholders only after a stat or bullet fill.
// Fields that outnumber the placeholders are dropped.
func Compose(s deck.Slide) Slide {
	kind := theme.KindFor(s.Type)
	layout, err := theme.LayoutFor(kind)
	if err != nil {
		kind = theme.KindContent
		layout, _ = theme.LayoutFor(kind)
	}

	out := Slide{
		Number:   s.Number,
		Kind:     kind,
		Layout:   layout,
		Notes:    s.Content.Notes,
		HasImage: s.Content.HasImage,
	}

	assign := func(field string, paragraphs [][]Span) {
		if len(out.Regions) >= len(layout.Placeholders) {
			return
		}
		out.Regions = append(out.Regions, Region{
			Placeholder: layout.Placeholders[len(out.Regions)],
			Field:       field,
			Paragraphs:  paragraphs,
		})
	}

	c := s.Content
	if c.Title != "" {
		assign("title", paragraphsFor("title", c))
	}

	metered := false
	switch {
	case c.Subtitle != "":
		assign("subtitle", paragraphsFor("subtitle", c))
	case len(c.Bullets) > 0:
		assign("bullets", paragraphsFor("bullets", c))
		metered = true
	case c.Text != "":
		assign("text", paragraphsFor("text", c))
	case c.Stat != "":
		assign("stat", paragraphsFor("stat", c))
		metered = true
	}

	if metered && c.Description != "" {
		assign("description", paragraphsFor("description", c))
	}
	if metered && c.Context != "" {
		assign("context", paragraphsFor("context", c))
	}

	return out
}

// Patch refills only the regions whose field appears in fields, reading
// the new value from content. Other regions keep their runs, and no
// regions are added or removed. Notes and the image flag follow the
// same rule.
func Patch(prev Slide, content deck.Content, fields []string) Slide {
	next := prev
	next.Regions = make([]Region, len(prev.Regions))
	copy(next.Regions, prev.Regions)

	patched := make(map[string]bool, len(fields))
	for _, f := range fields {
		patched[f] = true
	}

	for i, r := range next.Regions {
		if patched[r.Field] {
			next.Regions[i].Paragraphs = paragraphsFor(r.Field, content)
		}
	}
	if patched["notes"] {
		next.Notes = content.Notes
	}
	if patched["has_image"] {
		next.HasImage = content.HasImage
	}
	return next
}

func paragraphsFor(field string, c deck.Content) [][]Span {
	switch field {
	case "title":
		return singleParagraph(c.Title)
	case "subtitle":
		return singleParagraph(c.Subtitle)
	case "bullets":
		bullets := c.Bullets
		if len(bullets) > MaxBullets {
			bullets = bullets[:MaxBullets]
		}
		paragraphs := make([][]Span, 0, len(bullets))
		for _, b := range bullets {
			paragraphs = append(paragraphs, Spans(b))
		}
		return paragraphs
	case "text":
		return singleParagraph(c.Text)
	case "stat":
		return singleParagraph(c.Stat)
	case "description":
		return singleParagraph(c.Description)
	case "context":
		return singleParagraph(c.Context)
	default:
		return nil
	}
}

func singleParagraph(s string) [][]Span {
	if s == "" {
		return [][]Span{nil}
	}
	return [][]Span{Spans(s)}
}
