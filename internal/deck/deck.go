// Package deck holds the data model for a presentation under construction:
// the outline, per-slide content records, and field-level patches.
package deck

import "fmt"

// OutlineEntry is one planned slide. Entries are immutable after the
// outline is produced; feedback edits the generated Content instead.
type OutlineEntry struct {
	Number      int    `json:"number"`
	Type        string `json:"type"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// Outline is the slide plan for a whole deck.
type Outline struct {
	Title  string         `json:"presentation_title"`
	Slides []OutlineEntry `json:"slides"`
}

// Validate checks that entries are numbered 1..len(Slides) with no gaps
// or duplicates.
func (o *Outline) Validate() error {
	if len(o.Slides) == 0 {
		return fmt.Errorf("outline has no slides")
	}
	seen := make(map[int]bool, len(o.Slides))
	for _, e := range o.Slides {
		if e.Number < 1 || e.Number > len(o.Slides) {
			return fmt.Errorf("slide number %d out of range 1..%d", e.Number, len(o.Slides))
		}
		if seen[e.Number] {
			return fmt.Errorf("duplicate slide number %d", e.Number)
		}
		seen[e.Number] = true
	}
	return nil
}

// Content carries the fields a slide can show. All fields are optional;
// which ones are set depends on the slide type the model was asked for.
// Bullet and text fields may contain **bold** spans.
type Content struct {
	Title       string   `json:"title,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
	Text        string   `json:"text,omitempty"`
	Stat        string   `json:"stat,omitempty"`
	Description string   `json:"description,omitempty"`
	Context     string   `json:"context,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	HasImage    bool     `json:"has_image,omitempty"`
}

// Slide is one generated slide: its immutable position and type from the
// outline plus the content filled in (and possibly patched) afterwards.
type Slide struct {
	Number  int
	Type    string
	Content Content
}

// Deck is the accumulated presentation.
type Deck struct {
	Title  string
	Topic  string
	Theme  string
	Slides []Slide
}

// SlideAt returns the slide with the given 1-based number.
func (d *Deck) SlideAt(number int) (*Slide, bool) {
	for i := range d.Slides {
		if d.Slides[i].Number == number {
			return &d.Slides[i], true
		}
	}
	return nil, false
}

// Patch is a partial content update produced from user feedback. Nil
// fields were absent from the model's reply and leave the current value
// untouched; set fields replace the current value wholesale.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Subtitle    *string   `json:"subtitle,omitempty"`
	Bullets     *[]string `json:"bullets,omitempty"`
	Text        *string   `json:"text,omitempty"`
	Stat        *string   `json:"stat,omitempty"`
	Description *string   `json:"description,omitempty"`
	Context     *string   `json:"context,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	HasImage    *bool     `json:"has_image,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p *Patch) IsZero() bool {
	return p.Title == nil && p.Subtitle == nil && p.Bullets == nil &&
		p.Text == nil && p.Stat == nil && p.Description == nil &&
		p.Context == nil && p.Notes == nil && p.HasImage == nil
}

// Fields lists the JSON names of the fields the patch carries, in a fixed
// order. The renderer uses this to refill only the matching placeholders.
func (p *Patch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Subtitle != nil {
		fields = append(fields, "subtitle")
	}
	if p.Bullets != nil {
		fields = append(fields, "bullets")
	}
	if p.Text != nil {
		fields = append(fields, "text")
	}
	if p.Stat != nil {
		fields = append(fields, "stat")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Context != nil {
		fields = append(fields, "context")
	}
	if p.Notes != nil {
		fields = append(fields, "notes")
	}
	if p.HasImage != nil {
		fields = append(fields, "has_image")
	}
	return fields
}

// Apply merges the patch into c, last write wins per field.
func (p *Patch) Apply(c *Content) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Subtitle != nil {
		c.Subtitle = *p.Subtitle
	}
	if p.Bullets != nil {
		c.Bullets = *p.Bullets
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.Stat != nil {
		c.Stat = *p.Stat
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Context != nil {
		c.Context = *p.Context
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.HasImage != nil {
		c.HasImage = *p.HasImage
	}
}
