package html

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidecraft/internal/deck"
)

func testDoc(slides ...Slide) *Document {
	doc := NewDocument("Ocean Currents", StyleFor("vibrant"))
	for _, s := range slides {
		doc.Append(s)
	}
	return doc
}

func titleSlide(title, subtitle string) Slide {
	return Slide{Content: deck.Content{Title: title, Subtitle: subtitle}}
}

func contentSlide(title string, bullets []string) Slide {
	return Slide{Content: deck.Content{Title: title, Bullets: bullets}}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "known", key: "dark", want: "dark"},
		{name: "uppercase", key: "MODERN", want: "modern"},
		{name: "padded", key: " vibrant ", want: "vibrant"},
		{name: "unknown", key: "neon", want: "vibrant"},
		{name: "empty", key: "", want: "vibrant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StyleFor(tt.key); got.Key != tt.want {
				t.Errorf("StyleFor(%q).Key = %q, want %q", tt.key, got.Key, tt.want)
			}
		})
	}
}

func TestRenderBasicStructure(t *testing.T) {
	doc := testDoc(
		titleSlide("Ocean Currents", "A tour of the deep"),
		contentSlide("The Gulf Stream", []string{"Warm water moves **north**", "Drives regional climate"}),
	)

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page := string(data)

	for _, want := range []string{
		"<title>Ocean Currents</title>",
		"A tour of the deep",
		"The Gulf Stream",
		`id="notes-1"`,
		`<strong class="font-bold text-orange-500">north</strong>`,
		`id="totalSlides" class="text-white/90 font-semibold">2<`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderCapsBullets(t *testing.T) {
	bullets := make([]string, 9)
	for i := range bullets {
		bullets[i] = "point"
	}
	doc := testDoc(titleSlide("T", ""), contentSlide("Many points", bullets))

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := strings.Count(string(data), `class="bullet-point`); got != 6 {
		t.Errorf("bullet points rendered = %d, want 6", got)
	}
}

func TestRenderEscapesContent(t *testing.T) {
	doc := testDoc(
		titleSlide("T", ""),
		contentSlide("Injection", []string{`<script>alert("x")</script>`}),
	)

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page := string(data)

	if strings.Contains(page, `<script>alert`) {
		t.Errorf("bullet content not escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Errorf("escaped bullet content not found")
	}
}

func TestRenderImagePlaceholder(t *testing.T) {
	s := contentSlide("With visual", []string{"one"})
	s.Content.HasImage = true
	doc := testDoc(titleSlide("T", ""), s)

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(string(data), "Visual Content") {
		t.Errorf("placeholder block not rendered for missing image")
	}
}

func TestRenderEmbedsImage(t *testing.T) {
	s := contentSlide("With visual", []string{"one"})
	s.Content.HasImage = true
	s.Image = []byte{0xFF, 0xD8, 0xFF, 0xE0}
	doc := testDoc(titleSlide("T", ""), s)

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page := string(data)

	if !strings.Contains(page, "data:image/jpeg;base64,") {
		t.Errorf("embedded image data URI not found")
	}
	if strings.Contains(page, "Visual Content") {
		t.Errorf("placeholder rendered despite embedded image")
	}
}

func TestRenderThemeFontStack(t *testing.T) {
	doc := testDoc(titleSlide("T", ""))
	doc.HeadingFont = "Georgia"
	doc.BodyFont = "Georgia"

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(string(data), "'Georgia', 'Inter'") {
		t.Errorf("theme body font not injected into font stack")
	}
}

func TestTitleSubtitleFallsBackToFirstPoint(t *testing.T) {
	doc := testDoc(Slide{Content: deck.Content{Title: "T", Bullets: []string{"lead line"}}})

	data, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(string(data), "lead line") {
		t.Errorf("first content point not used as hero subtitle")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	doc := testDoc(titleSlide("T", ""))

	path := filepath.Join(t.TempDir(), "web", "deck.html")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Stat(%s) error = %v", path, err)
	}
}

func TestConvertPPTXSlideParts(t *testing.T) {
	doc := testDoc(
		titleSlide("Ocean Currents", "A tour of the deep"),
		contentSlide("The Gulf Stream", []string{"Warm **water**", "Moves north"}),
		contentSlide("Upwelling", []string{"Nutrients rise"}),
	)

	data, err := doc.ConvertPPTX()
	if err != nil {
		t.Fatalf("ConvertPPTX() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read pptx zip: %v", err)
	}

	count := 0
	var all []byte
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			count++
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open part %s: %v", f.Name, err)
			}
			content, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				t.Fatalf("read part %s: %v", f.Name, err)
			}
			all = append(all, content...)
		}
	}

	if count != 3 {
		t.Errorf("slide parts = %d, want 3", count)
	}
	for _, want := range []string{"Ocean Currents", "The Gulf Stream", "AI-Powered Presentation"} {
		if !strings.Contains(string(all), want) {
			t.Errorf("converted deck missing %q", want)
		}
	}
}

func TestConvertPPTXPlaceholder(t *testing.T) {
	s := contentSlide("With visual", []string{"one"})
	s.Content.HasImage = true
	doc := testDoc(titleSlide("T", ""), s)

	data, err := doc.ConvertPPTX()
	if err != nil {
		t.Fatalf("ConvertPPTX() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read pptx zip: %v", err)
	}

	found := false
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read part %s: %v", f.Name, err)
		}
		if strings.Contains(string(content), "Visual Content") {
			found = true
		}
	}

	if !found {
		t.Errorf("image placeholder not rendered in converted deck")
	}
}
