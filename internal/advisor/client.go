// Package advisor asks a hosted language model for budget optimization
// suggestions.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultTimeout   = 30 * time.Second
	DefaultMaxTokens = 1024

	apiVersion  = "2023-06-01"
	maxBodySize = 1 << 20 // 1 MB
)

var (
	// ErrNoAPIKey indicates no API key is configured.
	ErrNoAPIKey = errors.New("advisor: no API key configured")
	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("advisor: unauthorized (API key invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("advisor: rate limited")
	// ErrInvalidInput rejects input before any request is sent.
	ErrInvalidInput = errors.New("advisor: invalid input")
	// ErrBadResponse indicates the reply could not be understood.
	ErrBadResponse = errors.New("advisor: unexpected response")
)

// Optimizer produces suggestions for a budget.
type Optimizer interface {
	Optimize(ctx context.Context, in Input) (*Output, error)
}

// Config holds client settings. Zero values take the defaults.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// Client calls the Anthropic Messages API. Each Optimize call makes exactly
// one request.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient returns a client, or ErrNoAPIKey when the key is empty.
func NewClient(cfg Config) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &Client{cfg: cfg, http: &http.Client{}}, nil
}

// Optimize sends the budget and parses the suggestions.
func (c *Client) Optimize(ctx context.Context, in Input) (*Output, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	prompt, err := userPrompt(in)
	if err != nil {
		return nil, fmt.Errorf("advisor: encoding input: %w", err)
	}

	body, err := json.Marshal(messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.3,
		System:      systemPrompt,
		Messages:    []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: encoding request: %w", err)
	}

	start := time.Now()
	respBody, err := c.post(ctx, "/v1/messages", body)
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Int("expenses", len(in.Expenses)).Msg("advisor replied")

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return parseSuggestions(text.String())
}

// post performs an authenticated POST bounded by the configured timeout.
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("advisor: creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/budgetflow/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisor: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("advisor: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("advisor: reading response: %w", err)
	}
	return data, nil
}

// parseSuggestions accepts either {"suggestions": [...]} or a bare array,
// optionally wrapped in a markdown code fence.
func parseSuggestions(text string) (*Output, error) {
	text = cleanMarkdownWrapper(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrBadResponse)
	}

	var raw []rawSuggestion
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	} else {
		var wrapped struct {
			Suggestions []rawSuggestion `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		raw = wrapped.Suggestions
	}

	out := &Output{Suggestions: make([]Suggestion, 0, len(raw))}
	for _, r := range raw {
		if strings.TrimSpace(r.Category) == "" {
			continue
		}
		out.Suggestions = append(out.Suggestions, Suggestion{
			Category:         strings.TrimSpace(r.Category),
			PotentialSavings: parseSavings(r.PotentialSavings),
			Justification:    strings.TrimSpace(r.Justification),
		})
	}
	return out, nil
}

// parseSavings handles 45, 45.5, "45", "£45" and "$1,200.50".
func parseSavings(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// cleanMarkdownWrapper strips a surrounding ``` or ```json fence.
func cleanMarkdownWrapper(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
