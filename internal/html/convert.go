package html

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidecraft/internal/render"
)

// The web deck geometry is authored on a 10x7.5 page; the PowerPoint
// canvas is 10x5.625, so vertical values scale down.
const (
	emuPerInch    = 914400
	convertVScale = 5.625 / 7.5
)

// webPalette is a style's solid-color rendition for PowerPoint, where
// the page's gradients become stacked bands.
type webPalette struct {
	titleBands [3]string
	headerA    string
	headerB    string
	circle     string
	accent     string
	text       string
	bgBands    [2]string
	card       string
	cardBorder string
	badgeFill  string
	badgeText  string
	subtitle   string
	boldAccent bool
}

var webPalettes = map[string]webPalette{
	"vibrant": {
		titleBands: [3]string{"FF6D28D9", "FF3B82F6", "FF22D3EE"},
		headerA:    "FF6D28D9",
		headerB:    "FF3B82F6",
		circle:     "FFF97316",
		accent:     "FFF97316",
		text:       "FF1F2937",
		bgBands:    [2]string{"FFF9FAFB", "FFF3F4F6"},
		card:       "FFFFFFFF",
		cardBorder: "FFD1D5DB",
		badgeFill:  "FFFFFFFF",
		badgeText:  "FF6D28D9",
		subtitle:   "FFFFFFFF",
		boldAccent: true,
	},
	"modern": {
		titleBands: [3]string{"FF2563EB", "FF3B82F6", "FF60A5FA"},
		headerA:    "FF2563EB",
		headerB:    "FF3B82F6",
		circle:     "FF3B82F6",
		accent:     "FF3B82F6",
		text:       "FF111827",
		bgBands:    [2]string{"FFF9FAFB", "FFF3F4F6"},
		card:       "FFFFFFFF",
		cardBorder: "FFD1D5DB",
		badgeFill:  "FFFFFFFF",
		badgeText:  "FF2563EB",
		subtitle:   "FFFFFFFF",
		boldAccent: true,
	},
	"dark": {
		titleBands: [3]string{"FF111827", "FF1F2937", "FF374151"},
		headerA:    "FF111827",
		headerB:    "FF1F2937",
		circle:     "FFFBBF24",
		accent:     "FFFBBF24",
		text:       "FFE5E7EB",
		bgBands:    [2]string{"FF1F2937", "FF111827"},
		card:       "FF374151",
		cardBorder: "FF4B5563",
		badgeFill:  "FFFBBF24",
		badgeText:  "FF111827",
		subtitle:   "FFE5E7EB",
	},
}

func paletteFor(key string) webPalette {
	if p, ok := webPalettes[key]; ok {
		return p
	}
	return webPalettes[DefaultStyle]
}

// ConvertPPTX renders the deck as a PowerPoint file in the web style.
func (d *Document) ConvertPPTX() ([]byte, error) {
	p := ppt.New()
	props := p.GetDocumentProperties()
	props.Title = d.Title
	props.Creator = "SlideCraft"

	pal := paletteFor(d.Style.Key)

	for i, s := range d.Slides {
		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
			convertTitleSlide(slide, pal, s)
		} else {
			slide = p.CreateSlide()
			convertContentSlide(slide, pal, s)
		}
	}

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

// SavePPTX converts the deck and writes the PowerPoint file to path.
func (d *Document) SavePPTX(path string) error {
	data, err := d.ConvertPPTX()
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

func convertTitleSlide(slide *ppt.Slide, pal webPalette, s Slide) {
	for i, band := range pal.titleBands {
		webRect(slide, 0, float64(i)*2.5, 10, 2.5, band)
	}

	// Decorative accents standing in for the page's blobs.
	webRect(slide, 8.5, 0.5, 1.5, 1.5, pal.circle)
	webRect(slide, 0.8, 5.5, 1.2, 1.2, pal.circle)
	webRect(slide, 9, 6, 1.0, 1.0, pal.circle)

	badge := webRect(slide, 3.5, 1.8, 3, 0.4, pal.badgeFill)
	badgeTr := badge.CreateTextRun("✨ AI-Powered Presentation")
	badgeTr.GetFont().SetSize(12).SetBold(true).SetColor(ppt.NewColor(pal.badgeText))
	centerParagraph(badge.GetActiveParagraph())

	title := webTextbox(slide, 1, 2.8, 8, 2)
	titleTr := title.CreateTextRun(s.Content.Title)
	titleTr.GetFont().SetSize(54).SetBold(true).SetColor(ppt.ColorWhite)
	centerParagraph(title.GetActiveParagraph())

	webRect(slide, 4.2, 5.0, 1.6, 0.06, "FFFFFFFF")

	subtitle := s.Content.Subtitle
	if subtitle == "" {
		if pts := points(s.Content); len(pts) > 0 {
			subtitle = pts[0]
		}
	}
	if subtitle != "" {
		sub := webTextbox(slide, 1, 5.3, 8, 1.2)
		subTr := sub.CreateTextRun(subtitle)
		subTr.GetFont().SetSize(22).SetColor(ppt.NewColor(pal.subtitle))
		centerParagraph(sub.GetActiveParagraph())
	}
}

func convertContentSlide(slide *ppt.Slide, pal webPalette, s Slide) {
	for i, band := range pal.bgBands {
		webRect(slide, 0, float64(i)*3.75, 10, 3.75, band)
	}

	webRect(slide, 0.4, 0.4, 4.6, 1.1, pal.headerA)
	webRect(slide, 5, 0.4, 4.6, 1.1, pal.headerB)
	webRect(slide, 0.4, 1.6, 1.2, 0.08, pal.accent)

	// Card border is a slightly larger rectangle behind the card.
	webRect(slide, 0.4-borderIn(1), 1.9-borderIn(1), 9.2+2*borderIn(1), 5.4+2*borderIn(1), pal.cardBorder)
	webRect(slide, 0.4, 1.9, 9.2, 5.4, pal.card)

	title := webTextbox(slide, 0.6, 0.6, 8.8, 0.7)
	titleTr := title.CreateTextRun(s.Content.Title)
	titleTr.GetFont().SetSize(36).SetBold(true).SetColor(ppt.ColorWhite)

	contentWidth := 8.6
	if s.Content.HasImage {
		contentWidth = 4.3
	}

	body := webTextbox(slide, 0.7, 2.1, contentWidth, 4.9)
	for i, pt := range points(s.Content) {
		if i > 0 {
			body.CreateParagraph()
		}
		for _, span := range render.Spans(pt) {
			tr := body.CreateTextRun(span.Text)
			font := tr.GetFont()
			if span.Bold {
				font.SetSize(16).SetBold(true)
				if pal.boldAccent {
					font.SetColor(ppt.NewColor(pal.accent))
				} else {
					font.SetColor(ppt.NewColor(pal.text))
				}
			} else {
				font.SetSize(14).SetColor(ppt.NewColor(pal.text))
			}
		}
	}

	if s.Content.HasImage {
		convertImage(slide, pal, s)
	}
}

func convertImage(slide *ppt.Slide, pal webPalette, s Slide) {
	const (
		left   = 5.3
		top    = 2.1
		width  = 3.9
		height = 4.9
	)

	if len(s.Image) > 0 {
		mime := s.MIME
		if mime == "" {
			mime = "image/jpeg"
		}
		img := slide.CreateDrawingShape()
		img.SetImageData(s.Image, mime)
		img.SetOffsetX(emuX(left)).SetOffsetY(emuY(top))
		img.SetWidth(emuX(width)).SetHeight(emuY(height))
		return
	}

	webRect(slide, left-borderIn(3), top-borderIn(3), width+2*borderIn(3), height+2*borderIn(3), "FF6366F1")
	bands := [3]string{"FFE0E7FF", "FFDDD6FE", "FFFBCFE8"}
	for i, band := range bands {
		webRect(slide, left, top+float64(i)*height/3, width, height/3, band)
	}

	caption := webTextbox(slide, left+0.5, top+height/2-0.4, width-1, 0.8)
	capTr := caption.CreateTextRun("📸 Visual Content")
	capTr.GetFont().SetSize(16).SetBold(true).SetColor(ppt.NewColor("FF4F46E5"))
	centerParagraph(caption.GetActiveParagraph())
	caption.CreateParagraph()
	hintTr := caption.CreateTextRun("Add image or diagram")
	hintTr.GetFont().SetSize(12).SetColor(ppt.NewColor("FF4F46E5"))
	centerParagraph(caption.GetActiveParagraph())
}

func webRect(slide *ppt.Slide, x, y, w, h float64, argb string) *ppt.RichTextShape {
	r := slide.CreateRichTextShape()
	r.SetOffsetX(emuX(x)).SetOffsetY(emuY(y))
	r.SetWidth(emuX(w)).SetHeight(emuY(h))
	r.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(argb)))
	return r
}

func webTextbox(slide *ppt.Slide, x, y, w, h float64) *ppt.RichTextShape {
	r := slide.CreateRichTextShape()
	r.SetOffsetX(emuX(x)).SetOffsetY(emuY(y))
	r.SetWidth(emuX(w)).SetHeight(emuY(h))
	return r
}

func centerParagraph(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func emuX(in float64) int64 {
	return int64(in * emuPerInch)
}

func emuY(in float64) int64 {
	return int64(in * convertVScale * emuPerInch)
}

func borderIn(pt float64) float64 {
	return pt / 72
}
