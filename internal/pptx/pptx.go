// Package pptx emits a composed deck as a PowerPoint file. The document
// keeps the deck model and rebuilds the presentation on every save, so
// replacing a slide is a model edit rather than file surgery.
package pptx

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidecraft/internal/render"
	"slidecraft/internal/theme"
)

const (
	emuPerInch     = 914400
	defaultCreator = "SlideCraft"
	defaultMIME    = "image/jpeg"

	placeholderCaption = "Image placeholder"
	placeholderSize    = 14
)

// Slide is one deck entry: the composed content plus an optional image.
type Slide struct {
	Content render.Slide
	Image   []byte
	MIME    string
}

// Document is an editable deck bound to a theme.
type Document struct {
	Title   string
	Creator string
	Theme   theme.Theme
	Slides  []Slide
}

func NewDocument(title string, th theme.Theme) *Document {
	return &Document{
		Title:   title,
		Creator: defaultCreator,
		Theme:   th,
	}
}

// Append adds a slide at the end of the deck.
func (d *Document) Append(s Slide) {
	d.Slides = append(d.Slides, s)
}

// Replace swaps the slide at position (0-based) for a new one.
func (d *Document) Replace(position int, s Slide) error {
	if position < 0 || position >= len(d.Slides) {
		return fmt.Errorf("no slide at position %d", position)
	}
	d.Slides[position] = s
	return nil
}

func (d *Document) SlideCount() int {
	return len(d.Slides)
}

// Bytes renders the deck to PowerPoint file bytes.
func (d *Document) Bytes() ([]byte, error) {
	p := d.build()

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("create pptx writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}

	return buf.Bytes(), nil
}

// Save renders the deck and writes it to path, creating the directory
// if needed.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
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

func (d *Document) build() *ppt.Presentation {
	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Title = d.Title
	props.Creator = d.Creator
	if d.Creator == "" {
		props.Creator = defaultCreator
	}

	for i, s := range d.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		d.renderSlide(slide, s)
	}

	return p
}

// renderSlide draws one slide back to front: background, image, chrome,
// then text regions.
func (d *Document) renderSlide(slide *ppt.Slide, s Slide) {
	layout := s.Content.Layout

	bg := slide.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(emu(theme.SlideWidth)).SetHeight(emu(theme.SlideHeight))
	bg.SetFill(d.solidFill(layout.Background))

	imageDrawn := false
	if layout.Image != nil && s.Content.HasImage {
		if len(s.Image) > 0 {
			d.drawImage(slide, *layout.Image, s.Image, s.MIME)
			imageDrawn = true
		} else {
			d.drawImagePlaceholder(slide, *layout.Image)
		}
	}

	for _, dec := range layout.Decor {
		// The image region's frame is replaced by the image itself.
		if imageDrawn && layout.Image != nil && dec.Box == *layout.Image {
			continue
		}
		d.drawDecor(slide, dec)
	}

	for _, region := range s.Content.Regions {
		d.drawRegion(slide, region)
	}
}

func (d *Document) drawImage(slide *ppt.Slide, box theme.Rect, data []byte, mime string) {
	if mime == "" {
		mime = defaultMIME
	}
	shape := slide.CreateDrawingShape()
	shape.SetImageData(data, mime)
	shape.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y))
	shape.SetWidth(emu(box.W)).SetHeight(emu(box.H))
}

func (d *Document) drawImagePlaceholder(slide *ppt.Slide, box theme.Rect) {
	card := slide.CreateRichTextShape()
	card.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y))
	card.SetWidth(emu(box.W)).SetHeight(emu(box.H))
	card.SetFill(d.solidFill(theme.RoleBackgroundAlt))

	caption := slide.CreateRichTextShape()
	caption.SetOffsetX(emu(box.X)).SetOffsetY(emu(box.Y + box.H/2 - 0.2))
	caption.SetWidth(emu(box.W)).SetHeight(emu(0.4))
	tr := caption.CreateTextRun(placeholderCaption)
	tr.GetFont().SetSize(placeholderSize).SetColor(d.color(theme.RoleTextLight))
	alignCenter(caption.GetActiveParagraph())
}

// drawDecor fills a chrome shape. A border is faked with a slightly
// larger rectangle behind the fill, since GoPPT shapes carry no outline.
func (d *Document) drawDecor(slide *ppt.Slide, dec theme.Decor) {
	if dec.BorderPt > 0 {
		inset := dec.BorderPt / 72
		border := slide.CreateRichTextShape()
		border.SetOffsetX(emu(dec.Box.X - inset)).SetOffsetY(emu(dec.Box.Y - inset))
		border.SetWidth(emu(dec.Box.W + 2*inset)).SetHeight(emu(dec.Box.H + 2*inset))
		border.SetFill(d.solidFill(dec.Border))
	}

	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(emu(dec.Box.X)).SetOffsetY(emu(dec.Box.Y))
	shape.SetWidth(emu(dec.Box.W)).SetHeight(emu(dec.Box.H))
	shape.SetFill(d.solidFill(dec.Fill))
}

func (d *Document) drawRegion(slide *ppt.Slide, region render.Region) {
	ph := region.Placeholder

	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(emu(ph.Box.X)).SetOffsetY(emu(ph.Box.Y))
	shape.SetWidth(emu(ph.Box.W)).SetHeight(emu(ph.Box.H))

	for i, paragraph := range region.Paragraphs {
		if i > 0 {
			shape.CreateParagraph()
		}

		if len(paragraph) == 0 {
			tr := shape.CreateTextRun(" ")
			tr.GetFont().SetSize(ph.Size).SetColor(d.color(ph.Color))
		} else {
			if region.Field == "bullets" {
				tr := shape.CreateTextRun("• ")
				tr.GetFont().SetSize(ph.Size).SetColor(d.color(ph.Color))
			}
			for _, span := range paragraph {
				tr := shape.CreateTextRun(span.Text)
				font := tr.GetFont()
				font.SetSize(ph.Size).SetColor(d.color(ph.Color))
				if ph.Bold || span.Bold {
					font.SetBold(true)
				}
			}
		}

		switch ph.Align {
		case theme.AlignCenter:
			alignCenter(shape.GetActiveParagraph())
		case theme.AlignRight:
			alignRight(shape.GetActiveParagraph())
		}
	}
}

func (d *Document) solidFill(role theme.ColorRole) *ppt.Fill {
	return ppt.NewFill().SetSolid(d.color(role))
}

func (d *Document) color(role theme.ColorRole) ppt.Color {
	return ppt.NewColor(d.Theme.Color(role).ARGB())
}

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func alignRight(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}
