// Package groq is an alternative text-generation provider backed by the
// Groq API.
package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/conneroisu/groq-go"

	"slidecraft/internal/deck"
	"slidecraft/internal/llm"
	"slidecraft/pkg/prompts"
)

var _ llm.Client = (*Client)(nil)

type Client struct {
	client  *groq.Client
	model   groq.ChatModel
	prompts *prompts.Prompts
}

func NewClient(apiKey, model string, p *prompts.Prompts) (*Client, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &Client{
		client:  client,
		model:   groq.ChatModel(model),
		prompts: p,
	}, nil
}

func (c *Client) GenerateOutline(ctx context.Context, topic string, slideCount int) (*deck.Outline, error) {
	prompt, err := c.prompts.RenderOutline(prompts.OutlineParams{
		Topic:      topic,
		SlideCount: slideCount,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Outline, prompt)
	if err != nil {
		return nil, err
	}

	return llm.ParseOutline(content, slideCount)
}

func (c *Client) GenerateSlideContent(ctx context.Context, deckTitle string, entry deck.OutlineEntry) (*deck.Content, error) {
	prompt, err := c.prompts.RenderSlide(prompts.SlideParams{
		DeckTitle:   deckTitle,
		Number:      entry.Number,
		Type:        entry.Type,
		Topic:       entry.Topic,
		Description: entry.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Slide, prompt)
	if err != nil {
		return nil, err
	}

	return llm.ParseContent(content)
}

func (c *Client) InterpretFeedback(ctx context.Context, slide deck.Slide, feedback string) (*deck.Patch, error) {
	current, err := json.MarshalIndent(slide.Content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slide content: %w", err)
	}

	prompt, err := c.prompts.RenderFeedback(prompts.FeedbackParams{
		Type:     slide.Type,
		Current:  string(current),
		Feedback: feedback,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Feedback, prompt)
	if err != nil {
		return nil, err
	}

	return llm.ParsePatch(content)
}

func (c *Client) SelectTheme(ctx context.Context, topic string, themes []string) (string, error) {
	prompt, err := c.prompts.RenderTheme(prompts.ThemeParams{
		Topic:  topic,
		Themes: strings.Join(themes, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generate(ctx, c.prompts.System.Theme, prompt)
	if err != nil {
		return "", err
	}

	return llm.CleanKey(content), nil
}

func (c *Client) GenerateDeck(ctx context.Context, topic string, slideCount int) ([]deck.Slide, error) {
	prompt, err := c.prompts.RenderDeck(prompts.DeckParams{
		Topic:      topic,
		SlideCount: slideCount,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Deck, prompt)
	if err != nil {
		return nil, err
	}

	return llm.ParseSlides(content)
}

func (c *Client) ReviewDeck(ctx context.Context, title string, slides []deck.Slide) (*llm.Review, error) {
	view := make([]map[string]any, 0, len(slides))
	for _, s := range slides {
		view = append(view, map[string]any{
			"number":  s.Number,
			"type":    s.Type,
			"content": s.Content,
		})
	}
	summary, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slides: %w", err)
	}

	prompt, err := c.prompts.RenderReview(prompts.ReviewParams{
		Title:  title,
		Slides: string(summary),
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.generateJSONContent(ctx, c.prompts.System.Review, prompt)
	if err != nil {
		return nil, err
	}

	return llm.ParseReview(content)
}

func (c *Client) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.doGenerate(ctx, systemPrompt, userPrompt, false)
}

func (c *Client) generateJSONContent(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.doGenerate(ctx, systemPrompt, userPrompt, true)
}

func (c *Client) doGenerate(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	req := groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: systemPrompt},
			{Role: groq.RoleUser, Content: userPrompt},
		},
	}

	if jsonMode {
		req.ResponseFormat = &groq.ChatResponseFormat{Type: "json_object"}
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}
