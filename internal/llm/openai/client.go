// Package openai is a chat-completions client for the OpenAI API, used
// as the default text-generation provider.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slidecraft/internal/deck"
	"slidecraft/internal/llm"
	"slidecraft/pkg/prompts"
)

const (
	baseURL        = "https://api.openai.com/v1/chat/completions"
	defaultTimeout = 60 * time.Second
	roleSystem     = "system"
	roleUser       = "user"
)

// DeepSeekBaseURL points the client at DeepSeek's OpenAI-compatible
// chat API. The request and response wire formats are identical.
const DeepSeekBaseURL = "https://api.deepseek.com/v1/chat/completions"

// Sampling parameters per call kind. Deck replies are long, so the
// whole-deck call also raises the token ceiling.
const (
	outlineTemperature  = 0.7
	contentTemperature  = 0.7
	themeTemperature    = 0.3
	feedbackTemperature = 0.5
	deckTemperature     = 0.3
	reviewTemperature   = 0.3
	deckMaxTokens       = 4000
)

var _ llm.Client = (*Client)(nil)

type Client struct {
	apiKey     string
	httpClient *http.Client
	model      string
	batchModel string
	prompts    *prompts.Prompts
	baseURL    string
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Options struct {
	Model      string
	BatchModel string
	BaseURL    string
}

type request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type response struct {
	ID      string    `json:"id"`
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message Message `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewClient(apiKey string, opts Options, p *prompts.Prompts) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		model:      opts.Model,
		batchModel: opts.BatchModel,
		prompts:    p,
		baseURL:    baseURL,
	}
	if opts.BaseURL != "" {
		c.baseURL = opts.BaseURL
	}
	if c.batchModel == "" {
		c.batchModel = c.model
	}
	return c
}

func (c *Client) GenerateOutline(ctx context.Context, topic string, slideCount int) (*deck.Outline, error) {
	prompt, err := c.prompts.RenderOutline(prompts.OutlineParams{
		Topic:      topic,
		SlideCount: slideCount,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	content, err := c.complete(ctx, c.prompts.System.Outline, prompt, chatOptions{
		temperature: outlineTemperature,
		jsonMode:    true,
	})
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

	content, err := c.complete(ctx, c.prompts.System.Slide, prompt, chatOptions{
		temperature: contentTemperature,
		jsonMode:    true,
	})
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

	content, err := c.complete(ctx, c.prompts.System.Feedback, prompt, chatOptions{
		temperature: feedbackTemperature,
		jsonMode:    true,
	})
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

	content, err := c.complete(ctx, c.prompts.System.Theme, prompt, chatOptions{
		temperature: themeTemperature,
	})
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

	content, err := c.complete(ctx, c.prompts.System.Deck, prompt, chatOptions{
		model:       c.batchModel,
		temperature: deckTemperature,
		maxTokens:   deckMaxTokens,
		jsonMode:    true,
	})
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

	content, err := c.complete(ctx, c.prompts.System.Review, prompt, chatOptions{
		temperature: reviewTemperature,
		jsonMode:    true,
	})
	if err != nil {
		return nil, err
	}

	return llm.ParseReview(content)
}

func (c *Client) Model() string {
	return c.model
}

type chatOptions struct {
	model       string
	temperature float64
	maxTokens   int
	jsonMode    bool
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, opts chatOptions) (string, error) {
	model := opts.model
	if model == "" {
		model = c.model
	}

	reqBody := request{
		Model: model,
		Messages: []Message{
			{Role: roleSystem, Content: systemPrompt},
			{Role: roleUser, Content: userPrompt},
		},
		Temperature: opts.temperature,
		MaxTokens:   opts.maxTokens,
	}
	if opts.jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, data)
	if err != nil {
		return "", err
	}

	return c.parseResponse(resp)
}

func (c *Client) doRequest(ctx context.Context, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: api status %d: %s", llm.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error: %s", string(body))
	}

	return body, nil
}

func (c *Client) parseResponse(data []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("openai error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
