package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"slidecraft/internal/deck"
	"slidecraft/internal/images"
	"slidecraft/internal/llm"
	"slidecraft/internal/pptx"
	"slidecraft/internal/render"
	"slidecraft/internal/theme"
)

const (
	minSlideCount = 3
	maxSlideCount = 20
)

// Step names a stage of the slide-by-slide build loop.
type Step string

const (
	StepInput    Step = "input"
	StepOutline  Step = "outline"
	StepBuilding Step = "building"
	StepDone     Step = "done"
)

// slideImage keeps fetched photo bytes next to their MIME type so a
// patched slide can be re-rendered without refetching.
type slideImage struct {
	data []byte
	mime string
}

// Conversation drives the interactive build: outline first, then one
// slide at a time with a feedback loop before each approval. All calls
// happen on one goroutine.
type Conversation struct {
	service *Service
	session *session

	step     Step
	deck     *deck.Deck
	outline  *deck.Outline
	doc      *pptx.Document
	rendered []render.Slide
	images   []slideImage
	current  int
	path     string
}

func NewConversation(service *Service) *Conversation {
	return &Conversation{
		service: service,
		session: newSession(service.Config().Output.Dir),
		step:    StepInput,
	}
}

func (c *Conversation) Step() Step   { return c.step }
func (c *Conversation) Current() int { return c.current }
func (c *Conversation) Path() string { return c.path }

func (c *Conversation) Outline() *deck.Outline { return c.outline }

func (c *Conversation) Title() string {
	if c.deck == nil {
		return ""
	}
	return c.deck.Title
}

func (c *Conversation) ThemeKey() string {
	if c.deck == nil {
		return ""
	}
	return c.deck.Theme
}

func (c *Conversation) SlideCount() int {
	if c.deck == nil {
		return 0
	}
	return len(c.deck.Slides)
}

// CurrentSlide returns the slide in flight, or nil outside the
// building step.
func (c *Conversation) CurrentSlide() *deck.Slide {
	if c.step != StepBuilding {
		return nil
	}
	return &c.deck.Slides[c.current]
}

// Start asks the model for an outline and moves to the outline step.
// A zero slideCount takes the configured default.
func (c *Conversation) Start(ctx context.Context, topic string, slideCount int) (*deck.Outline, error) {
	if c.step != StepInput {
		return nil, fmt.Errorf("a deck is already in progress; start over first")
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if slideCount == 0 {
		slideCount = c.service.Config().Slides.Count
	}
	if slideCount < minSlideCount || slideCount > maxSlideCount {
		return nil, fmt.Errorf("slide count must be between %d and %d, got %d", minSlideCount, maxSlideCount, slideCount)
	}

	slog.Info("Generating outline...", "topic", topic, "slides", slideCount)
	outline, err := c.service.LLM().GenerateOutline(ctx, topic, slideCount)
	if err != nil {
		return nil, err
	}

	c.outline = outline
	c.deck = &deck.Deck{
		Title:  outline.Title,
		Topic:  topic,
		Slides: make([]deck.Slide, len(outline.Slides)),
	}
	for i, entry := range outline.Slides {
		c.deck.Slides[i] = deck.Slide{Number: entry.Number, Type: entry.Type}
	}
	c.rendered = make([]render.Slide, len(outline.Slides))
	c.images = make([]slideImage, len(outline.Slides))
	c.path = c.session.deckPath(topic)
	c.step = StepOutline

	return outline, nil
}

// SelectTheme fixes the deck's theme. An explicit preference wins when
// it names a known theme; otherwise the model picks one for the topic.
// Any failure falls back to the default theme.
func (c *Conversation) SelectTheme(ctx context.Context, preference string) (theme.Theme, error) {
	if c.step != StepOutline {
		return theme.Theme{}, fmt.Errorf("select a theme after the outline, before building")
	}

	th := resolveTheme(ctx, c.service.LLM(), c.deck.Topic, preference)
	c.deck.Theme = th.Key
	c.doc = pptx.NewDocument(c.deck.Title, th)
	return th, nil
}

// resolveTheme picks the deck theme. An explicit preference wins when
// it names a known theme; otherwise the model picks one for the topic.
// Any failure falls back to the default theme.
func resolveTheme(ctx context.Context, client llm.Client, topic, preference string) theme.Theme {
	if preference != "" {
		th, err := theme.Resolve(preference)
		if err == nil {
			return th
		}
		slog.Warn("Unknown theme, using default", "theme", preference)
		return theme.Default()
	}

	key, err := client.SelectTheme(ctx, topic, theme.Keys())
	if err != nil {
		slog.Warn("Theme selection failed, using default", "error", err)
		return theme.Default()
	}
	th, err := theme.Resolve(key)
	if err != nil {
		slog.Warn("Model picked an unknown theme, using default", "theme", key)
		return theme.Default()
	}

	slog.Info("Theme selected", "theme", th.Key)
	return th
}

// Begin moves from the outline to building the first slide.
func (c *Conversation) Begin(ctx context.Context) error {
	if c.step != StepOutline {
		return fmt.Errorf("generate an outline first")
	}
	if c.doc == nil {
		th := theme.Default()
		c.deck.Theme = th.Key
		c.doc = pptx.NewDocument(c.deck.Title, th)
	}

	c.step = StepBuilding
	c.current = 0
	return c.buildSlide(ctx, 0)
}

// Feedback revises the slide in flight. The model turns the feedback
// into a field patch; only the named fields are refilled, and the deck
// file is rewritten in place. The returned field names may be empty
// when the feedback asked for nothing actionable.
func (c *Conversation) Feedback(ctx context.Context, feedback string) ([]string, error) {
	if c.step != StepBuilding {
		return nil, fmt.Errorf("no slide is being built")
	}

	record := &c.deck.Slides[c.current]
	patch, err := c.service.LLM().InterpretFeedback(ctx, *record, feedback)
	if err != nil {
		return nil, err
	}
	if patch.IsZero() {
		return nil, nil
	}

	fields := patch.Fields()
	patch.Apply(&record.Content)
	c.rendered[c.current] = render.Patch(c.rendered[c.current], record.Content, fields)
	c.refreshImage(ctx, c.current, patch)

	if err := c.doc.Replace(c.current, c.slideFor(c.current)); err != nil {
		return nil, err
	}
	if err := c.doc.Save(c.path); err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}

	slog.Info("Slide revised", "slide", record.Number, "fields", fields)
	return fields, nil
}

// Approve accepts the slide in flight. The build moves on to the next
// outline entry, or finishes when the approved slide was the last.
func (c *Conversation) Approve(ctx context.Context) error {
	if c.step != StepBuilding {
		return fmt.Errorf("no slide is being built")
	}

	if c.current+1 == len(c.deck.Slides) {
		if err := c.doc.Save(c.path); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}
		c.step = StepDone
		cleanupImageCache(c.service)
		slog.Info("Deck complete", "path", c.path, "slides", len(c.deck.Slides))
		return nil
	}

	c.current++
	return c.buildSlide(ctx, c.current)
}

// Retry rebuilds the slide in flight after a failed attempt.
func (c *Conversation) Retry(ctx context.Context) error {
	if c.step != StepBuilding {
		return fmt.Errorf("no slide is being built")
	}
	return c.buildSlide(ctx, c.current)
}

// StartOver discards the deck in progress and returns to the input
// step. Files already written stay on disk; the next deck gets a
// fresh session stamp.
func (c *Conversation) StartOver() {
	c.session = newSession(c.service.Config().Output.Dir)
	c.step = StepInput
	c.deck = nil
	c.outline = nil
	c.doc = nil
	c.rendered = nil
	c.images = nil
	c.current = 0
	c.path = ""
}

// Review asks the model for an overall read on the finished deck. The
// result is advisory and never blocks the saved file.
func (c *Conversation) Review(ctx context.Context) (*llm.Review, error) {
	if c.step != StepDone {
		return nil, fmt.Errorf("finish the deck before asking for a review")
	}
	return c.service.LLM().ReviewDeck(ctx, c.deck.Title, c.deck.Slides)
}

func (c *Conversation) buildSlide(ctx context.Context, i int) error {
	entry := c.outline.Slides[i]
	slog.Info("Generating slide content...", "slide", entry.Number, "total", len(c.outline.Slides), "type", entry.Type)

	content, err := c.service.LLM().GenerateSlideContent(ctx, c.deck.Title, entry)
	if err != nil {
		return err
	}

	record := &c.deck.Slides[i]
	record.Content = *content
	c.rendered[i] = render.Compose(*record)
	if content.HasImage {
		c.fetchImage(ctx, i)
	}

	// Replace on a retry of a slide that already made it into the deck.
	slide := c.slideFor(i)
	if i < c.doc.SlideCount() {
		if err := c.doc.Replace(i, slide); err != nil {
			return err
		}
	} else {
		c.doc.Append(slide)
	}

	if err := c.doc.Save(c.path); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// fetchImage looks up a stock photo for slide i. Failures are logged
// and the slide keeps the placeholder graphic.
func (c *Conversation) fetchImage(ctx context.Context, i int) {
	fetcher := c.service.Fetcher()
	if fetcher == nil {
		return
	}

	record := c.deck.Slides[i]
	data, err := fetcher.ImageForSlide(ctx, record.Content.Title, record.Number)
	if err != nil {
		slog.Warn("Image fetch failed, using placeholder", "slide", record.Number, "error", err)
		return
	}
	c.images[i] = slideImage{data: data, mime: images.DetectMIME(data)}
}

func (c *Conversation) refreshImage(ctx context.Context, i int, patch *deck.Patch) {
	if patch.HasImage == nil {
		return
	}
	if !*patch.HasImage {
		c.images[i] = slideImage{}
		return
	}
	if c.images[i].data == nil {
		c.fetchImage(ctx, i)
	}
}

func (c *Conversation) slideFor(i int) pptx.Slide {
	return pptx.Slide{
		Content: c.rendered[i],
		Image:   c.images[i].data,
		MIME:    c.images[i].mime,
	}
}
