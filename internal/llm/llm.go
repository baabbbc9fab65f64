// Package llm defines the text-generation client interface the deck
// builder depends on, plus the response parsing shared by providers.
package llm

import (
	"context"

	"slidecraft/internal/deck"
)

// Review is the model's quality assessment of a finished deck.
type Review struct {
	OverallQuality string   `json:"overall_quality"`
	Score          int      `json:"score"`
	Strengths      []string `json:"strengths"`
	Suggestions    []string `json:"suggestions"`
	MissingTopics  []string `json:"missing_topics"`
}

// Client generates deck structure and content. Implementations do not
// retry failed generation calls; callers decide whether to ask again.
type Client interface {
	GenerateOutline(ctx context.Context, topic string, slideCount int) (*deck.Outline, error)
	GenerateSlideContent(ctx context.Context, deckTitle string, entry deck.OutlineEntry) (*deck.Content, error)
	InterpretFeedback(ctx context.Context, slide deck.Slide, feedback string) (*deck.Patch, error)
	SelectTheme(ctx context.Context, topic string, themes []string) (string, error)
	GenerateDeck(ctx context.Context, topic string, slideCount int) ([]deck.Slide, error)
	ReviewDeck(ctx context.Context, title string, slides []deck.Slide) (*Review, error)
}
