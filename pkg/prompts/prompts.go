package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

//go:embed prompts.yaml
var defaultPrompts []byte

type Prompts struct {
	System   SystemPrompts   `yaml:"system"`
	Outline  OutlinePrompts  `yaml:"outline"`
	Slide    SlidePrompts    `yaml:"slide"`
	Theme    ThemePrompts    `yaml:"theme"`
	Feedback FeedbackPrompts `yaml:"feedback"`
	Deck     DeckPrompts     `yaml:"deck"`
	Review   ReviewPrompts   `yaml:"review"`
}

type SystemPrompts struct {
	Default  string `yaml:"default"`
	Outline  string `yaml:"outline"`
	Slide    string `yaml:"slide"`
	Theme    string `yaml:"theme"`
	Feedback string `yaml:"feedback"`
	Deck     string `yaml:"deck"`
	Review   string `yaml:"review"`
}

type OutlinePrompts struct {
	Generate string `yaml:"generate"`
}

// SlidePrompts holds one template per content shape. Which shape a slide
// type uses is decided in RenderSlide.
type SlidePrompts struct {
	Title   string `yaml:"title"`
	Bullets string `yaml:"bullets"`
	Stat    string `yaml:"stat"`
	Default string `yaml:"default"`
}

type ThemePrompts struct {
	Select string `yaml:"select"`
}

type FeedbackPrompts struct {
	Interpret string `yaml:"interpret"`
}

type DeckPrompts struct {
	Generate string `yaml:"generate"`
}

type ReviewPrompts struct {
	Evaluate string `yaml:"evaluate"`
}

type OutlineParams struct {
	Topic      string
	SlideCount int
}

type SlideParams struct {
	DeckTitle   string
	Number      int
	Type        string
	Topic       string
	Description string
}

type ThemeParams struct {
	Topic  string
	Themes string
}

type FeedbackParams struct {
	Type     string
	Current  string
	Feedback string
}

type DeckParams struct {
	Topic      string
	SlideCount int
}

type ReviewParams struct {
	Title  string
	Slides string
}

// Load returns the prompt pack, preferring a prompts.yaml in the
// working directory over the embedded defaults.
func Load() (*Prompts, error) {
	if data, err := os.ReadFile(defaultPromptsPath); err == nil {
		return parse(data)
	}
	return parse(defaultPrompts)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return &p, nil
}

func (p *Prompts) RenderOutline(params OutlineParams) (string, error) {
	return render(p.Outline.Generate, params)
}

// RenderSlide picks the content-shape template for the slide type:
// title slides, bullet-style slides, stat slides, and a default
// title-plus-text shape for everything else.
func (p *Prompts) RenderSlide(params SlideParams) (string, error) {
	switch strings.ToLower(strings.TrimSpace(params.Type)) {
	case "title":
		return render(p.Slide.Title, params)
	case "content", "bullets", "summary", "conclusion", "features", "timeline", "comparison":
		return render(p.Slide.Bullets, params)
	case "stat", "statistic", "statistics":
		return render(p.Slide.Stat, params)
	default:
		return render(p.Slide.Default, params)
	}
}

func (p *Prompts) RenderTheme(params ThemeParams) (string, error) {
	return render(p.Theme.Select, params)
}

func (p *Prompts) RenderFeedback(params FeedbackParams) (string, error) {
	return render(p.Feedback.Interpret, params)
}

func (p *Prompts) RenderDeck(params DeckParams) (string, error) {
	return render(p.Deck.Generate, params)
}

func (p *Prompts) RenderReview(params ReviewParams) (string, error) {
	return render(p.Review.Evaluate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
