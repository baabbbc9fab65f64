package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	_ "image/jpeg"
	_ "image/png"
)

const (
	// DefaultKeepRecent is how many cached images survive a cleanup pass.
	DefaultKeepRecent = 20

	maxKeywords  = 4
	maxTitleLen  = 50
	minImageSize = 100
)

// Common words stripped from slide titles before searching for a photo.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"can": true, "about": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true, "between": true,
	"under": true, "what": true, "why": true, "how": true, "when": true,
	"where": true, "who": true, "which": true, "this": true, "that": true,
	"these": true, "those": true, "introduction": true, "overview": true,
	"conclusion": true, "summary": true,
}

// Searcher finds and downloads photos.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

// Fetcher resolves slide titles to image bytes with an on-disk cache.
type Fetcher struct {
	search Searcher
	dir    string
}

func NewFetcher(search Searcher, dir string) *Fetcher {
	return &Fetcher{search: search, dir: dir}
}

// ImageForSlide returns photo bytes for a slide, reusing a cached download
// for the same slide and title when one exists.
func (f *Fetcher) ImageForSlide(ctx context.Context, title string, index int) ([]byte, error) {
	path := f.cachePath(title, index)
	if data, err := os.ReadFile(path); err == nil && isValidImage(data) {
		slog.Debug("Using cached image", "path", path)
		return data, nil
	}

	query := Keywords(title)
	slog.Debug("Searching for slide image", "query", query, "slide", index)

	imageURL, err := f.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search image: %w", err)
	}

	data, err := f.search.Download(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if !isValidImage(data) {
		return nil, fmt.Errorf("invalid image data for %q", query)
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		slog.Warn("Failed to create image cache dir", "dir", f.dir, "error", err)
		return data, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Warn("Failed to cache image", "path", path, "error", err)
	}
	return data, nil
}

// Cleanup removes cached images beyond the keepRecent most recent ones.
func (f *Fetcher) Cleanup(keepRecent int) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read image cache dir: %w", err)
	}

	type cached struct {
		path string
		mod  time.Time
	}
	var files []cached
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".jpeg") && !strings.HasSuffix(name, ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, cached{path: filepath.Join(f.dir, e.Name()), mod: info.ModTime()})
	}

	if len(files) <= keepRecent {
		return nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod.After(files[j].mod) })

	for _, c := range files[keepRecent:] {
		if err := os.Remove(c.path); err != nil {
			slog.Warn("Failed to remove old image", "path", c.path, "error", err)
			continue
		}
		slog.Debug("Removed old cached image", "path", c.path)
	}
	return nil
}

func (f *Fetcher) cachePath(title string, index int) string {
	return filepath.Join(f.dir, fmt.Sprintf("slide_%d_%s.jpg", index, SafeTitle(title)))
}

// Keywords reduces a slide title to search terms, dropping filler words
// and keeping at most four. An over-filtered title falls back to itself.
func Keywords(title string) string {
	words := strings.Fields(strings.ToLower(title))
	keywords := make([]string, 0, maxKeywords)
	for _, w := range words {
		if stopWords[w] || len(w) <= 2 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}
	if len(keywords) == 0 {
		return title
	}
	return strings.Join(keywords, " ")
}

// SafeTitle turns a slide title into a filename fragment.
func SafeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}
	return string(runes)
}

// DetectMIME sniffs the media type of downloaded image bytes.
func DetectMIME(data []byte) string {
	if bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		return "image/png"
	}
	return "image/jpeg"
}

func isValidImage(data []byte) bool {
	if len(data) < minImageSize {
		return false
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return true
	}
	if bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		return true
	}
	_, _, err := image.Decode(bytes.NewReader(data))
	return err == nil
}
