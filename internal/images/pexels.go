// Package images finds stock photos for slides and keeps a small
// on-disk cache of downloads.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"slidecraft/pkg/httputil"
)

const (
	pexelsSearchURL = "https://api.pexels.com/v1/search"
	searchTimeout   = 15 * time.Second
)

// PexelsClient queries the Pexels photo API.
type PexelsClient struct {
	apiKey     string
	httpClient *httputil.RetryClient
	baseURL    string
}

type pexelsResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

type pexelsPhoto struct {
	Src pexelsSrc `json:"src"`
}

type pexelsSrc struct {
	Large string `json:"large"`
}

func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:     apiKey,
		httpClient: httputil.NewRetryClient(&http.Client{Timeout: searchTimeout}, httputil.DefaultRetryConfig()),
		baseURL:    pexelsSearchURL,
	}
}

// Search returns the URL of the best landscape photo for the query.
func (c *PexelsClient) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")
	params.Set("size", "medium")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("pexels api error: %s, body: %s", resp.Status, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var searchResp pexelsResponse
	if err := json.Unmarshal(data, &searchResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(searchResp.Photos) == 0 {
		return "", fmt.Errorf("no photos found for %q", query)
	}

	return searchResp.Photos[0].Src.Large, nil
}

// Download fetches image bytes, rejecting non-image responses.
func (c *PexelsClient) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isImageContentType(contentType) {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	return data, nil
}

func isImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}
