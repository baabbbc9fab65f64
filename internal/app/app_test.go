package app

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidecraft/internal/deck"
	"slidecraft/internal/llm"
	"slidecraft/internal/theme"
	"slidecraft/internal/uploader"
	"slidecraft/pkg/config"
)

type mockLLM struct {
	outline      *deck.Outline
	outlineErr   error
	contentErr   error
	contentTitle string
	patch        *deck.Patch
	patchErr     error
	themeKey     string
	themeErr     error
	slides       []deck.Slide
	deckErr      error
	review       *llm.Review
	reviewErr    error

	contentCalls int
}

func (m *mockLLM) GenerateOutline(_ context.Context, topic string, slideCount int) (*deck.Outline, error) {
	if m.outlineErr != nil {
		return nil, m.outlineErr
	}
	if m.outline != nil {
		return m.outline, nil
	}

	out := &deck.Outline{Title: topic}
	for i := 1; i <= slideCount; i++ {
		entryType := "content"
		switch i {
		case 1:
			entryType = "title"
		case slideCount:
			entryType = "summary"
		}
		out.Slides = append(out.Slides, deck.OutlineEntry{
			Number: i,
			Type:   entryType,
			Topic:  fmt.Sprintf("Part %d", i),
		})
	}
	return out, nil
}

func (m *mockLLM) GenerateSlideContent(_ context.Context, _ string, entry deck.OutlineEntry) (*deck.Content, error) {
	m.contentCalls++
	if m.contentErr != nil {
		return nil, m.contentErr
	}

	c := &deck.Content{Title: entry.Topic}
	if m.contentTitle != "" {
		c.Title = m.contentTitle
	}
	if entry.Type == "title" {
		c.Subtitle = "An introduction"
	} else {
		c.Bullets = []string{"First point", "Second point"}
	}
	return c, nil
}

func (m *mockLLM) InterpretFeedback(_ context.Context, _ deck.Slide, _ string) (*deck.Patch, error) {
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	if m.patch != nil {
		return m.patch, nil
	}
	return &deck.Patch{}, nil
}

func (m *mockLLM) SelectTheme(_ context.Context, _ string, _ []string) (string, error) {
	if m.themeErr != nil {
		return "", m.themeErr
	}
	return m.themeKey, nil
}

func (m *mockLLM) GenerateDeck(_ context.Context, _ string, _ int) ([]deck.Slide, error) {
	if m.deckErr != nil {
		return nil, m.deckErr
	}
	return m.slides, nil
}

func (m *mockLLM) ReviewDeck(_ context.Context, _ string, _ []deck.Slide) (*llm.Review, error) {
	if m.reviewErr != nil {
		return nil, m.reviewErr
	}
	return m.review, nil
}

type mockUploader struct {
	response *uploader.UploadResponse
	err      error
}

func (m *mockUploader) Upload(_ context.Context, _ uploader.UploadRequest) (*uploader.UploadResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockUploader) Share(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response.URL, nil
}

func (m *mockUploader) Platform() string {
	return "mock"
}

func testService(t *testing.T, client llm.Client) *Service {
	t.Helper()
	cfg := &config.Config{
		Slides: config.SlidesConfig{Count: 10},
		Output: config.OutputConfig{Dir: t.TempDir()},
		Images: config.ImagesConfig{KeepRecent: 20},
	}
	return NewService(ServiceOptions{Config: cfg, LLM: client})
}

func pptxSlideCount(t *testing.T, path string) int {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer r.Close()

	count := 0
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			count++
		}
	}
	return count
}

func TestServiceGetters(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(ServiceOptions{Config: cfg})

	if svc.Config() != cfg {
		t.Error("Config() returned wrong config")
	}
	if svc.LLM() != nil {
		t.Error("LLM() should return nil when set to nil")
	}
	if svc.Fetcher() != nil {
		t.Error("Fetcher() should return nil when set to nil")
	}
	if svc.Archive() != nil {
		t.Error("Archive() should return nil when set to nil")
	}
	if svc.Uploader() != nil {
		t.Error("Uploader() should return nil when set to nil")
	}
}

func TestNewPipeline(t *testing.T) {
	service := testService(t, &mockLLM{})
	if NewPipeline(service) == nil {
		t.Fatal("NewPipeline() returned nil")
	}
}

func TestSafeTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		max   int
		want  string
	}{
		{
			name:  "simpleTopic",
			topic: "Ocean Currents",
			max:   30,
			want:  "Ocean_Currents",
		},
		{
			name:  "specialChars",
			topic: "Go: Why? (2026)",
			max:   30,
			want:  "Go__Why___2026_",
		},
		{
			name:  "truncated",
			topic: strings.Repeat("a", 40),
			max:   30,
			want:  strings.Repeat("a", 30),
		},
		{
			name:  "unicodeKept",
			topic: "Климат Земли",
			max:   30,
			want:  "Климат_Земли",
		},
		{
			name:  "empty",
			topic: "",
			max:   30,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := safeTopic(tt.topic, tt.max)
			if got != tt.want {
				t.Errorf("safeTopic(%q, %d) = %q, want %q", tt.topic, tt.max, got, tt.want)
			}
		})
	}
}

func TestBatchFileName(t *testing.T) {
	got := batchFileName("Ocean Currents", ".html")
	want := "Ocean_Currents_presentation.html"
	if got != want {
		t.Errorf("batchFileName() = %q, want %q", got, want)
	}
}

func TestSessionDeckPath(t *testing.T) {
	s := newSession("/tmp/out")
	path := s.deckPath("Deep Sea Life")

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "Deep_Sea_Life_") {
		t.Errorf("deckPath() base = %q, want Deep_Sea_Life_ prefix", base)
	}
	if !strings.HasSuffix(base, ".pptx") {
		t.Errorf("deckPath() base = %q, want .pptx suffix", base)
	}
	if filepath.Dir(path) != "/tmp/out" {
		t.Errorf("deckPath() dir = %q, want /tmp/out", filepath.Dir(path))
	}
}

func TestConversationBuildsWholeDeck(t *testing.T) {
	client := &mockLLM{}
	conv := NewConversation(testService(t, client))

	outline, err := conv.Start(t.Context(), "Photosynthesis", 5)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(outline.Slides) != 5 {
		t.Fatalf("outline has %d slides, want 5", len(outline.Slides))
	}
	for i, entry := range outline.Slides {
		if entry.Number != i+1 {
			t.Errorf("entry %d numbered %d, want %d", i, entry.Number, i+1)
		}
	}
	if outline.Slides[0].Type != "title" {
		t.Errorf("first slide type = %q, want title", outline.Slides[0].Type)
	}
	if conv.Step() != StepOutline {
		t.Fatalf("step = %q, want %q", conv.Step(), StepOutline)
	}

	th, err := conv.SelectTheme(t.Context(), "modern_blue")
	if err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}
	if th.Key != "modern_blue" {
		t.Errorf("theme = %q, want modern_blue", th.Key)
	}

	if err := conv.Begin(t.Context()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if conv.Step() != StepBuilding || conv.Current() != 0 {
		t.Fatalf("after Begin: step = %q current = %d, want building 0", conv.Step(), conv.Current())
	}
	if client.contentCalls != 1 {
		t.Errorf("content requested %d times after Begin, want 1", client.contentCalls)
	}
	if got := conv.CurrentSlide().Content.Title; got != "Part 1" {
		t.Errorf("slide 1 title = %q, want Part 1", got)
	}

	for i := 0; i < 5; i++ {
		if err := conv.Approve(t.Context()); err != nil {
			t.Fatalf("Approve() %d error = %v", i, err)
		}
	}
	if conv.Step() != StepDone {
		t.Fatalf("step = %q, want %q", conv.Step(), StepDone)
	}
	if client.contentCalls != 5 {
		t.Errorf("content requested %d times, want 5", client.contentCalls)
	}

	base := filepath.Base(conv.Path())
	if !strings.HasPrefix(base, "Photosynthesis_") || !strings.HasSuffix(base, ".pptx") {
		t.Errorf("deck path base = %q, want Photosynthesis_*.pptx", base)
	}
	if _, err := os.Stat(conv.Path()); err != nil {
		t.Fatalf("deck file missing: %v", err)
	}
	if got := pptxSlideCount(t, conv.Path()); got != 5 {
		t.Errorf("deck file has %d slides, want 5", got)
	}
}

func TestConversationFeedbackPatchesOneField(t *testing.T) {
	client := &mockLLM{}
	conv := NewConversation(testService(t, client))

	if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.SelectTheme(t.Context(), "modern_blue"); err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}
	if err := conv.Begin(t.Context()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := conv.Approve(t.Context()); err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
	}
	if conv.Current() != 2 {
		t.Fatalf("current = %d, want 2", conv.Current())
	}
	titleBefore := conv.CurrentSlide().Content.Title

	client.patch = &deck.Patch{Bullets: &[]string{"New point"}}
	fields, err := conv.Feedback(t.Context(), "replace the bullets")
	if err != nil {
		t.Fatalf("Feedback() error = %v", err)
	}
	if len(fields) != 1 || fields[0] != "bullets" {
		t.Errorf("fields = %v, want [bullets]", fields)
	}

	slide := conv.CurrentSlide()
	if len(slide.Content.Bullets) != 1 || slide.Content.Bullets[0] != "New point" {
		t.Errorf("bullets = %v, want [New point]", slide.Content.Bullets)
	}
	if slide.Content.Title != titleBefore {
		t.Errorf("title changed to %q, want %q", slide.Content.Title, titleBefore)
	}
	if conv.Step() != StepBuilding || conv.Current() != 2 {
		t.Errorf("after feedback: step = %q current = %d, want building 2", conv.Step(), conv.Current())
	}
}

func TestConversationFeedbackNoChanges(t *testing.T) {
	client := &mockLLM{}
	conv := NewConversation(testService(t, client))

	if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.SelectTheme(t.Context(), "modern_blue"); err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}
	if err := conv.Begin(t.Context()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}

	fields, err := conv.Feedback(t.Context(), "looks great")
	if err != nil {
		t.Fatalf("Feedback() error = %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
}

func TestConversationRetryAfterFailure(t *testing.T) {
	client := &mockLLM{}
	conv := NewConversation(testService(t, client))

	if _, err := conv.Start(t.Context(), "Photosynthesis", 3); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.SelectTheme(t.Context(), "modern_blue"); err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}

	client.contentErr = errors.New("model flaked")
	if err := conv.Begin(t.Context()); err == nil {
		t.Fatal("Begin() = nil error, want the content failure")
	}
	if conv.Step() != StepBuilding || conv.Current() != 0 {
		t.Fatalf("after failed Begin: step = %q current = %d, want building 0", conv.Step(), conv.Current())
	}

	client.contentErr = nil
	if err := conv.Retry(t.Context()); err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if got := conv.CurrentSlide().Content.Title; got != "Part 1" {
		t.Errorf("slide 1 title = %q, want Part 1", got)
	}

	// Retrying a slide that already landed rebuilds it in place.
	client.contentTitle = "Part 1, take two"
	if err := conv.Retry(t.Context()); err != nil {
		t.Fatalf("second Retry() error = %v", err)
	}
	if got := conv.CurrentSlide().Content.Title; got != "Part 1, take two" {
		t.Errorf("regenerated title = %q, want Part 1, take two", got)
	}
	if conv.Current() != 0 {
		t.Errorf("current = %d, want 0", conv.Current())
	}

	client.contentTitle = ""
	for i := 0; i < 3; i++ {
		if err := conv.Approve(t.Context()); err != nil {
			t.Fatalf("Approve() %d error = %v", i, err)
		}
	}
	if got := pptxSlideCount(t, conv.Path()); got != 3 {
		t.Errorf("deck file has %d slides, want 3", got)
	}
}

func TestConversationStartValidation(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		slideCount int
	}{
		{
			name:       "emptyTopic",
			topic:      "   ",
			slideCount: 5,
		},
		{
			name:       "tooFewSlides",
			topic:      "Photosynthesis",
			slideCount: 2,
		},
		{
			name:       "tooManySlides",
			topic:      "Photosynthesis",
			slideCount: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(testService(t, &mockLLM{}))
			if _, err := conv.Start(t.Context(), tt.topic, tt.slideCount); err == nil {
				t.Error("Start() expected error, got nil")
			}
		})
	}
}

func TestConversationStartTwice(t *testing.T) {
	conv := NewConversation(testService(t, &mockLLM{}))

	if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.Start(t.Context(), "Another topic", 5); err == nil {
		t.Error("second Start() expected error, got nil")
	}
}

func TestConversationDefaultSlideCount(t *testing.T) {
	conv := NewConversation(testService(t, &mockLLM{}))

	outline, err := conv.Start(t.Context(), "Photosynthesis", 0)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(outline.Slides) != 10 {
		t.Errorf("outline has %d slides, want configured default 10", len(outline.Slides))
	}
}

func TestConversationThemeFallback(t *testing.T) {
	tests := []struct {
		name       string
		preference string
		client     *mockLLM
		want       string
	}{
		{
			name:       "unknownPreference",
			preference: "neon_pink",
			client:     &mockLLM{},
			want:       theme.DefaultKey,
		},
		{
			name:       "modelPick",
			preference: "",
			client:     &mockLLM{themeKey: "ocean_teal"},
			want:       "ocean_teal",
		},
		{
			name:       "modelPickUnknown",
			preference: "",
			client:     &mockLLM{themeKey: "hot_magenta"},
			want:       theme.DefaultKey,
		},
		{
			name:       "modelError",
			preference: "",
			client:     &mockLLM{themeErr: errors.New("boom")},
			want:       theme.DefaultKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(testService(t, tt.client))
			if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			th, err := conv.SelectTheme(t.Context(), tt.preference)
			if err != nil {
				t.Fatalf("SelectTheme() error = %v", err)
			}
			if th.Key != tt.want {
				t.Errorf("theme = %q, want %q", th.Key, tt.want)
			}
		})
	}
}

func TestConversationStartOver(t *testing.T) {
	conv := NewConversation(testService(t, &mockLLM{}))

	if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.SelectTheme(t.Context(), "modern_blue"); err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}
	if err := conv.Begin(t.Context()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	path := conv.Path()

	conv.StartOver()

	if conv.Step() != StepInput {
		t.Errorf("step = %q, want %q", conv.Step(), StepInput)
	}
	if conv.Outline() != nil || conv.CurrentSlide() != nil {
		t.Error("expected state discarded after StartOver")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file should survive StartOver: %v", err)
	}

	if _, err := conv.Start(t.Context(), "A new topic", 5); err != nil {
		t.Errorf("Start() after StartOver error = %v", err)
	}
}

func TestConversationReviewOnlyWhenDone(t *testing.T) {
	client := &mockLLM{review: &llm.Review{OverallQuality: "good", Score: 8}}
	conv := NewConversation(testService(t, client))

	if _, err := conv.Review(t.Context()); err == nil {
		t.Error("Review() before done expected error, got nil")
	}

	if _, err := conv.Start(t.Context(), "Photosynthesis", 5); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := conv.SelectTheme(t.Context(), "modern_blue"); err != nil {
		t.Fatalf("SelectTheme() error = %v", err)
	}
	if err := conv.Begin(t.Context()); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := conv.Approve(t.Context()); err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
	}

	review, err := conv.Review(t.Context())
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if review.Score != 8 {
		t.Errorf("review score = %d, want 8", review.Score)
	}
}

func batchSlides() []deck.Slide {
	return []deck.Slide{
		{Number: 1, Type: "title", Content: deck.Content{Title: "Ocean Currents", Subtitle: "A tour"}},
		{Number: 2, Type: "content", Content: deck.Content{Title: "Gulf Stream", Bullets: []string{"Warm", "Fast"}}},
		{Number: 3, Type: "summary", Content: deck.Content{Title: "Recap", Bullets: []string{"Currents matter"}}},
	}
}

func TestPipelineGeneratePPTX(t *testing.T) {
	client := &mockLLM{
		slides: batchSlides(),
		review: &llm.Review{OverallQuality: "solid", Score: 7},
	}
	pipeline := NewPipeline(testService(t, client))

	result, err := pipeline.Generate(t.Context(), BatchRequest{
		Topic:    "Ocean Currents",
		Theme:    "ocean_teal",
		FileName: "deck",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Title != "Ocean Currents" {
		t.Errorf("title = %q, want Ocean Currents", result.Title)
	}
	if result.Theme != "ocean_teal" {
		t.Errorf("theme = %q, want ocean_teal", result.Theme)
	}
	if result.SlideCount != 3 {
		t.Errorf("slide count = %d, want 3", result.SlideCount)
	}
	if filepath.Base(result.PPTXPath) != "deck.pptx" {
		t.Errorf("pptx path base = %q, want deck.pptx", filepath.Base(result.PPTXPath))
	}
	if got := pptxSlideCount(t, result.PPTXPath); got != 3 {
		t.Errorf("deck file has %d slides, want 3", got)
	}
	if result.Review == nil || result.Review.Score != 7 {
		t.Errorf("review = %+v, want score 7", result.Review)
	}
}

func TestPipelineGenerateHTML(t *testing.T) {
	client := &mockLLM{slides: batchSlides(), reviewErr: errors.New("review down")}
	pipeline := NewPipeline(testService(t, client))

	result, err := pipeline.Generate(t.Context(), BatchRequest{
		Topic:  "Ocean Currents",
		Format: FormatHTML,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if filepath.Base(result.HTMLPath) != "Ocean_Currents_presentation.html" {
		t.Errorf("html path base = %q, want Ocean_Currents_presentation.html", filepath.Base(result.HTMLPath))
	}
	if filepath.Base(result.PPTXPath) != "Ocean_Currents_vibrant.pptx" {
		t.Errorf("pptx path base = %q, want Ocean_Currents_vibrant.pptx", filepath.Base(result.PPTXPath))
	}
	if result.Style != "vibrant" {
		t.Errorf("style = %q, want vibrant", result.Style)
	}

	data, err := os.ReadFile(result.HTMLPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.Contains(string(data), "Gulf Stream") {
		t.Error("html output missing slide content")
	}
	if got := pptxSlideCount(t, result.PPTXPath); got != 3 {
		t.Errorf("converted deck has %d slides, want 3", got)
	}
	if result.Review != nil {
		t.Error("review should be nil when the review call fails")
	}
}

func TestPipelineGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		request BatchRequest
	}{
		{
			name:    "emptyTopic",
			request: BatchRequest{Topic: " "},
		},
		{
			name:    "badCount",
			request: BatchRequest{Topic: "Ocean Currents", SlideCount: 2},
		},
		{
			name:    "badFormat",
			request: BatchRequest{Topic: "Ocean Currents", Format: "pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := NewPipeline(testService(t, &mockLLM{slides: batchSlides()}))
			if _, err := pipeline.Generate(t.Context(), tt.request); err == nil {
				t.Error("Generate() expected error, got nil")
			}
		})
	}
}

func TestPipelinePublish(t *testing.T) {
	tests := []struct {
		name     string
		uploader uploader.Uploader
		wantErr  bool
		wantURL  string
	}{
		{
			name: "success",
			uploader: &mockUploader{response: &uploader.UploadResponse{
				ID:       "abc123",
				URL:      "https://drive.google.com/file/d/abc123/view",
				Platform: "drive",
			}},
			wantURL: "https://drive.google.com/file/d/abc123/view",
		},
		{
			name:     "uploadError",
			uploader: &mockUploader{err: errors.New("upload failed")},
			wantErr:  true,
		},
		{
			name:    "notConfigured",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir()}}
			svc := NewService(ServiceOptions{Config: cfg, Uploader: tt.uploader})
			pipeline := NewPipeline(svc)

			response, err := pipeline.Publish(t.Context(), PublishRequest{
				FilePath: "/tmp/deck.pptx",
				Name:     "deck.pptx",
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Publish() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && response.URL != tt.wantURL {
				t.Errorf("Publish() URL = %q, want %q", response.URL, tt.wantURL)
			}
		})
	}
}

func TestPipelineArchiveNotConfigured(t *testing.T) {
	pipeline := NewPipeline(testService(t, &mockLLM{}))

	if _, err := pipeline.Archive(t.Context(), "/tmp/deck.pptx"); err == nil {
		t.Error("Archive() expected error, got nil")
	}
}
