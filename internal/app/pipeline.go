package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"slidecraft/internal/deck"
	"slidecraft/internal/html"
	"slidecraft/internal/images"
	"slidecraft/internal/llm"
	"slidecraft/internal/pptx"
	"slidecraft/internal/render"
	"slidecraft/internal/theme"
	"slidecraft/internal/uploader"
)

// Output formats for one-shot generation. The HTML format also writes
// a PowerPoint file converted from the web styling.
const (
	FormatPPTX = "pptx"
	FormatHTML = "html"
)

// Pipeline runs the one-shot build: the whole deck comes from a single
// model call and is emitted without a review loop.
type Pipeline struct {
	service *Service
}

type BatchRequest struct {
	Topic      string
	SlideCount int
	Theme      string
	Format     string
	FileName   string
	Style      string
	SaveJSON   bool
}

type BatchResult struct {
	Title      string
	Theme      string
	Style      string
	PPTXPath   string
	HTMLPath   string
	JSONPath   string
	SlideCount int
	Review     *llm.Review
}

type PublishRequest struct {
	FilePath    string
	Name        string
	Description string
}

type ConvertRequest struct {
	InputPath string
	Style     string
	FileName  string
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

func (p *Pipeline) Generate(ctx context.Context, request BatchRequest) (*BatchResult, error) {
	cfg := p.service.Config()

	topic := strings.TrimSpace(request.Topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	count := request.SlideCount
	if count == 0 {
		count = cfg.Slides.Count
	}
	if count < minSlideCount || count > maxSlideCount {
		return nil, fmt.Errorf("slide count must be between %d and %d, got %d", minSlideCount, maxSlideCount, count)
	}
	format := request.Format
	if format == "" {
		format = FormatPPTX
	}
	if format != FormatPPTX && format != FormatHTML {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	slog.Info("Generating deck...", "topic", topic, "slides", count)
	slides, err := p.service.LLM().GenerateDeck(ctx, topic, count)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("model returned an empty deck")
	}

	title := topic
	if t := slides[0].Content.Title; t != "" {
		title = t
	}

	slog.Info("Fetching images...")
	slideImages := p.fetchImages(ctx, slides)

	result := &BatchResult{
		Title:      title,
		SlideCount: len(slides),
	}

	switch format {
	case FormatHTML:
		styleKey := request.Style
		if styleKey == "" {
			styleKey = cfg.Slides.HTMLStyle
		}
		style := html.StyleFor(styleKey)

		htmlPath, pptxPath, err := p.emitHTML(request.FileName, topic, title, style, slides, slideImages)
		if err != nil {
			return nil, err
		}
		result.Style = style.Key
		result.HTMLPath = htmlPath
		result.PPTXPath = pptxPath
	default:
		preference := request.Theme
		if preference == "" {
			preference = cfg.Slides.Theme
		}
		th := resolveTheme(ctx, p.service.LLM(), topic, preference)

		path, err := p.emitPPTX(request.FileName, topic, title, th, slides, slideImages)
		if err != nil {
			return nil, err
		}
		result.Theme = th.Key
		result.PPTXPath = path
	}

	if request.SaveJSON {
		jsonPath := filepath.Join(cfg.Output.Dir, batchFileName(topic, ".json"))
		file := &deck.File{Title: title, Topic: topic, Slides: slides}
		if err := file.Write(jsonPath); err != nil {
			return nil, err
		}
		slog.Info("Deck data written", "path", jsonPath)
		result.JSONPath = jsonPath
	}

	slog.Info("Reviewing deck...")
	review, err := p.service.LLM().ReviewDeck(ctx, title, slides)
	if err != nil {
		slog.Warn("Deck review failed", "error", err)
	} else {
		result.Review = review
	}

	cleanupImageCache(p.service)
	return result, nil
}

// fetchImages looks up a stock photo for every slide that wants one.
// Failures leave the slide on the placeholder graphic.
func (p *Pipeline) fetchImages(ctx context.Context, slides []deck.Slide) []slideImage {
	out := make([]slideImage, len(slides))

	fetcher := p.service.Fetcher()
	if fetcher == nil {
		for _, s := range slides {
			if s.Content.HasImage {
				slog.Warn("Image fetcher not configured (missing PEXELS_API_KEY)")
				break
			}
		}
		return out
	}

	for i, s := range slides {
		if !s.Content.HasImage {
			continue
		}
		data, err := fetcher.ImageForSlide(ctx, s.Content.Title, s.Number)
		if err != nil {
			slog.Warn("Image fetch failed, using placeholder", "slide", s.Number, "error", err)
			continue
		}
		out[i] = slideImage{data: data, mime: images.DetectMIME(data)}
	}
	return out
}

func (p *Pipeline) emitPPTX(fileName, topic, title string, th theme.Theme, slides []deck.Slide, imgs []slideImage) (string, error) {
	doc := pptx.NewDocument(title, th)
	for i, s := range slides {
		doc.Append(pptx.Slide{
			Content: render.Compose(s),
			Image:   imgs[i].data,
			MIME:    imgs[i].mime,
		})
	}

	if fileName == "" {
		fileName = batchFileName(topic, ".pptx")
	} else if !strings.HasSuffix(fileName, ".pptx") {
		fileName += ".pptx"
	}
	path := filepath.Join(p.service.Config().Output.Dir, fileName)

	slog.Info("Writing PowerPoint file...", "path", path)
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// emitHTML writes the web deck plus a PowerPoint file converted from
// the same styling.
func (p *Pipeline) emitHTML(fileName, topic, title string, style html.Style, slides []deck.Slide, imgs []slideImage) (string, string, error) {
	doc := html.NewDocument(title, style)
	for i, s := range slides {
		doc.Append(html.Slide{
			Content: s.Content,
			Image:   imgs[i].data,
			MIME:    imgs[i].mime,
		})
	}

	if fileName == "" {
		fileName = batchFileName(topic, ".html")
	} else if !strings.HasSuffix(fileName, ".html") {
		fileName += ".html"
	}
	outputDir := p.service.Config().Output.Dir
	htmlPath := filepath.Join(outputDir, fileName)

	slog.Info("Writing HTML file...", "path", htmlPath)
	if err := doc.Save(htmlPath); err != nil {
		return "", "", err
	}

	pptxPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.pptx", safeTopic(topic, maxBatchInPath), style.Key))
	slog.Info("Converting to PowerPoint...", "path", pptxPath)
	if err := doc.SavePPTX(pptxPath); err != nil {
		return "", "", err
	}

	return htmlPath, pptxPath, nil
}

// Convert rebuilds saved deck data as a styled HTML deck plus the
// matching PowerPoint file. Images are fetched again; the cache makes
// repeats cheap.
func (p *Pipeline) Convert(ctx context.Context, request ConvertRequest) (*BatchResult, error) {
	file, err := loadDeckFile(request.InputPath)
	if err != nil {
		return nil, err
	}

	title := file.Title
	if title == "" {
		if t := file.Slides[0].Content.Title; t != "" {
			title = t
		} else {
			base := filepath.Base(request.InputPath)
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	topic := file.Topic
	if topic == "" {
		topic = title
	}

	styleKey := request.Style
	if styleKey == "" {
		styleKey = p.service.Config().Slides.HTMLStyle
	}
	style := html.StyleFor(styleKey)

	slog.Info("Fetching images...")
	slideImages := p.fetchImages(ctx, file.Slides)

	htmlPath, pptxPath, err := p.emitHTML(request.FileName, topic, title, style, file.Slides, slideImages)
	if err != nil {
		return nil, err
	}

	cleanupImageCache(p.service)
	return &BatchResult{
		Title:      title,
		Style:      style.Key,
		PPTXPath:   pptxPath,
		HTMLPath:   htmlPath,
		SlideCount: len(file.Slides),
	}, nil
}

// loadDeckFile reads deck data, accepting either the JSON written with
// --json or a raw model response saved by hand.
func loadDeckFile(path string) (*deck.File, error) {
	file, err := deck.ReadFile(path)
	if err == nil {
		return file, nil
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, err
	}
	slides, parseErr := llm.ParseSlides(string(raw))
	if parseErr != nil || len(slides) == 0 {
		return nil, err
	}
	return &deck.File{Slides: slides}, nil
}

// Archive copies finished deck files into the GCS archive under a
// fresh id. Empty paths are skipped.
func (p *Pipeline) Archive(ctx context.Context, paths ...string) ([]string, error) {
	archive := p.service.Archive()
	if archive == nil {
		return nil, fmt.Errorf("deck archive is not configured (set GCS_BUCKET)")
	}

	id := uuid.New().String()
	var objects []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		object, err := archive.Upload(ctx, id, path)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", filepath.Base(path), err)
		}
		slog.Info("Archived deck file", "object", object)
		objects = append(objects, object)
	}
	return objects, nil
}

// Publish uploads a finished deck file to Google Drive.
func (p *Pipeline) Publish(ctx context.Context, request PublishRequest) (*uploader.UploadResponse, error) {
	up := p.service.Uploader()
	if up == nil {
		return nil, fmt.Errorf("drive uploader is not configured (set DRIVE_CLIENT_ID and DRIVE_CLIENT_SECRET)")
	}

	response, err := up.Upload(ctx, uploader.UploadRequest{
		FilePath:    request.FilePath,
		Name:        request.Name,
		Description: request.Description,
		Folder:      p.service.Config().Drive.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("upload deck: %w", err)
	}
	return response, nil
}

func cleanupImageCache(service *Service) {
	fetcher := service.Fetcher()
	if fetcher == nil {
		return
	}
	if err := fetcher.Cleanup(service.Config().Images.KeepRecent); err != nil {
		slog.Warn("Image cache cleanup failed", "error", err)
	}
}
