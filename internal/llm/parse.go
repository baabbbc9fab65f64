package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"slidecraft/internal/deck"
)

// ExtractJSON strips a markdown code fence from a model reply. A fence
// labeled json wins over an unlabeled one; with no fence the reply is
// returned as is. An unclosed fence yields everything after the opener.
func ExtractJSON(raw string) string {
	if _, after, found := strings.Cut(raw, "```json"); found {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, found := strings.Cut(raw, "```"); found {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(raw)
}

// CleanKey normalizes a single-token reply such as a theme key: quotes
// and whitespace trimmed, anything after the first token dropped.
func CleanKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.Trim(key, "\"'`")
	if idx := strings.IndexAny(key, " \n\t"); idx > 0 {
		key = key[:idx]
	}
	return strings.ToLower(strings.TrimSpace(key))
}

func decode(raw string, v any) error {
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}

// ParseOutline decodes an outline reply and assigns slide numbers
// sequentially by position, ignoring whatever numbering the model used.
// The model may over-deliver, in which case extra entries are dropped;
// fewer entries than requested is an error.
func ParseOutline(raw string, slideCount int) (*deck.Outline, error) {
	var outline deck.Outline
	if err := decode(raw, &outline); err != nil {
		return nil, err
	}
	if len(outline.Slides) < slideCount {
		return nil, fmt.Errorf("outline has %d slides, want %d", len(outline.Slides), slideCount)
	}
	outline.Slides = outline.Slides[:slideCount]
	for i := range outline.Slides {
		outline.Slides[i].Number = i + 1
	}
	return &outline, nil
}

// ParseContent decodes a single slide's content reply.
func ParseContent(raw string) (*deck.Content, error) {
	var content deck.Content
	if err := decode(raw, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// ParsePatch decodes a feedback reply carrying only changed fields.
func ParsePatch(raw string) (*deck.Patch, error) {
	var patch deck.Patch
	if err := decode(raw, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// ParseReview decodes a deck review reply.
func ParseReview(raw string) (*Review, error) {
	var review Review
	if err := decode(raw, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

type batchSlide struct {
	Title    string   `json:"title"`
	Content  []string `json:"content"`
	Notes    string   `json:"notes"`
	HasImage bool     `json:"has_image"`
}

// ParseSlides decodes a whole-deck reply. The expected shape is a JSON
// array of slides, but models sometimes wrap the array in an object, so
// common wrapper keys are tried before giving up.
func ParseSlides(raw string) ([]deck.Slide, error) {
	text := ExtractJSON(raw)

	var items []batchSlide
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		var wrapped map[string]json.RawMessage
		if err2 := json.Unmarshal([]byte(text), &wrapped); err2 != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
		for _, key := range []string{"slides", "presentation", "deck"} {
			if rawItems, ok := wrapped[key]; ok {
				if err2 := json.Unmarshal(rawItems, &items); err2 == nil && len(items) > 0 {
					break
				}
			}
		}
		if len(items) == 0 {
			for _, rawItems := range wrapped {
				if err2 := json.Unmarshal(rawItems, &items); err2 == nil && len(items) > 0 {
					break
				}
			}
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no slides found in response")
	}

	slides := make([]deck.Slide, 0, len(items))
	for i, item := range items {
		s := deck.Slide{Number: i + 1}
		if i == 0 {
			s.Type = "title"
			s.Content = deck.Content{
				Title:    item.Title,
				Notes:    item.Notes,
				HasImage: item.HasImage,
			}
			if len(item.Content) > 0 {
				s.Content.Subtitle = item.Content[0]
			}
		} else {
			s.Type = "bullets"
			s.Content = deck.Content{
				Title:    item.Title,
				Bullets:  item.Content,
				Notes:    item.Notes,
				HasImage: item.HasImage,
			}
		}
		slides = append(slides, s)
	}
	return slides, nil
}
