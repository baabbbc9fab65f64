// Package html emits a deck as a standalone interactive web page and
// can render the same deck as a PowerPoint file in the matching web
// style. The page embeds its images, so it needs no companion files.
package html

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"slidecraft/internal/deck"
	"slidecraft/internal/render"
)

const DefaultStyle = "vibrant"

// Style maps one presentation style to its utility classes.
type Style struct {
	Key       string
	Primary   string
	Secondary string
	Text      string
	Bg        string
	Accent    string
	ContentBg string
	CardBg    string
	Border    string
}

var styles = map[string]Style{
	"vibrant": {
		Key:       "vibrant",
		Primary:   "bg-gradient-to-r from-purple-600 to-blue-600",
		Secondary: "bg-gradient-to-r from-green-400 to-blue-500",
		Text:      "text-gray-800",
		Bg:        "bg-white",
		Accent:    "text-orange-500",
		ContentBg: "bg-gradient-to-br from-gray-50 to-gray-100",
		CardBg:    "bg-white/80",
		Border:    "border-gray-200/50",
	},
	"modern": {
		Key:       "modern",
		Primary:   "bg-gradient-to-r from-blue-600 to-indigo-700",
		Secondary: "bg-gradient-to-r from-blue-400 to-blue-600",
		Text:      "text-gray-900",
		Bg:        "bg-gray-50",
		Accent:    "text-blue-600",
		ContentBg: "bg-gradient-to-br from-gray-50 to-gray-100",
		CardBg:    "bg-white/80",
		Border:    "border-gray-200/50",
	},
	"dark": {
		Key:       "dark",
		Primary:   "bg-gradient-to-r from-gray-900 to-gray-800",
		Secondary: "bg-gradient-to-r from-purple-900 to-indigo-900",
		Text:      "text-gray-100",
		Bg:        "bg-gray-900",
		Accent:    "text-yellow-400",
		ContentBg: "bg-gradient-to-br from-gray-800 to-gray-900",
		CardBg:    "bg-gray-800/80",
		Border:    "border-gray-600/50",
	},
}

// StyleFor resolves a style key, falling back to the vibrant style for
// anything unrecognized.
func StyleFor(key string) Style {
	if s, ok := styles[strings.ToLower(strings.TrimSpace(key))]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// Styles lists the style keys in a fixed order.
func Styles() []string {
	return []string{"vibrant", "modern", "dark"}
}

// Slide is one deck entry: content plus an optional embedded image.
type Slide struct {
	Content deck.Content
	Image   []byte
	MIME    string
}

// Document is a deck bound to a web style. The first slide is rendered
// as the hero title slide.
type Document struct {
	Title       string
	Style       Style
	HeadingFont string
	BodyFont    string
	Slides      []Slide
}

func NewDocument(title string, style Style) *Document {
	return &Document{Title: title, Style: style}
}

func (d *Document) Append(s Slide) {
	d.Slides = append(d.Slides, s)
}

// Render produces the standalone page bytes.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := deckTmpl.Execute(&buf, d.view()); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the page and writes it to path, creating the directory
// if needed.
func (d *Document) Save(path string) error {
	data, err := d.Render()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

type page struct {
	Title     string
	Style     Style
	Count     int
	BodyStack template.CSS
	HeadStack template.CSS
	Slides    []slideView
}

type slideView struct {
	Index    int
	IsTitle  bool
	Title    string
	Subtitle string
	Points   []pointView
	Notes    string
	HasImage bool
	ImageSrc template.URL
}

type pointView struct {
	HTML  template.HTML
	Delay template.CSS
}

func (d *Document) view() page {
	p := page{
		Title:     d.Title,
		Style:     d.Style,
		Count:     len(d.Slides),
		BodyStack: fontStack(d.BodyFont, "'Inter', -apple-system, BlinkMacSystemFont, sans-serif"),
		HeadStack: fontStack(d.HeadingFont, "'Poppins', sans-serif"),
	}

	for i, s := range d.Slides {
		v := slideView{
			Index:    i,
			IsTitle:  i == 0,
			Title:    s.Content.Title,
			Notes:    s.Content.Notes,
			HasImage: s.Content.HasImage,
		}

		pts := points(s.Content)
		if v.IsTitle {
			v.Subtitle = s.Content.Subtitle
			if v.Subtitle == "" && len(pts) > 0 {
				v.Subtitle = pts[0]
			}
		} else {
			for j, pt := range pts {
				v.Points = append(v.Points, pointView{
					HTML:  boldHTML(pt, d.Style.Accent),
					Delay: template.CSS(fmt.Sprintf("%.1fs", float64(j)*0.1)),
				})
			}
		}

		if len(s.Image) > 0 {
			mime := s.MIME
			if mime == "" {
				mime = "image/jpeg"
			}
			v.ImageSrc = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(s.Image))
		}

		p.Slides = append(p.Slides, v)
	}

	return p
}

// points flattens a slide's content into the list the web layout shows.
func points(c deck.Content) []string {
	if len(c.Bullets) > 0 {
		b := c.Bullets
		if len(b) > render.MaxBullets {
			b = b[:render.MaxBullets]
		}
		return b
	}

	var pts []string
	for _, s := range []string{c.Stat, c.Text, c.Description, c.Context} {
		if s != "" {
			pts = append(pts, s)
		}
	}
	if len(pts) == 0 && c.Subtitle != "" {
		pts = append(pts, c.Subtitle)
	}
	return pts
}

// boldHTML turns inline **bold** markup into strong tags carrying the
// style's accent class. Text outside the markers is escaped as-is.
func boldHTML(text, accentClass string) template.HTML {
	var b strings.Builder
	for _, span := range render.Spans(text) {
		escaped := template.HTMLEscapeString(span.Text)
		if span.Bold {
			b.WriteString(`<strong class="font-bold ` + accentClass + `">`)
			b.WriteString(escaped)
			b.WriteString(`</strong>`)
		} else {
			b.WriteString(escaped)
		}
	}
	return template.HTML(b.String())
}

func fontStack(primary, fallback string) template.CSS {
	if primary == "" {
		return template.CSS(fallback)
	}
	return template.CSS("'" + primary + "', " + fallback)
}
