package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 15 * time.Second
	maxResponseLen = 1 << 20
)

// Client calls an OpenAI-compatible chat completions endpoint and asks for
// a JSON object answer. It does not retry; callers decide what a failure means.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// ClientConfig configures Client. Zero values pick defaults.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient returns a Client for cfg.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.model == "" {
		c.model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.client = &http.Client{Timeout: timeout}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Classify asks for a full matrix placement.
func (c *Client) Classify(ctx context.Context, req Request) (Suggestion, error) {
	var s Suggestion
	if err := c.complete(ctx, "classify", matrixPrompt(req), &s); err != nil {
		return Suggestion{}, err
	}
	if err := ValidateSuggestion(s); err != nil {
		return Suggestion{}, err
	}
	return s, nil
}

// Categorize asks for a category and priority only.
func (c *Client) Categorize(ctx context.Context, req Request) (CategorySuggestion, error) {
	var s CategorySuggestion
	if err := c.complete(ctx, "categorize", categoryPrompt(req), &s); err != nil {
		return CategorySuggestion{}, err
	}
	if err := ValidateCategorySuggestion(s); err != nil {
		return CategorySuggestion{}, err
	}
	return s, nil
}

func (c *Client) complete(ctx context.Context, op, prompt string, out any) error {
	if c.apiKey == "" {
		return &Error{Op: op, Err: ErrDisabled}
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return &Error{Op: op, Err: fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Error.Message)}
		}
		return &Error{Op: op, Err: fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("%w: decode envelope: %v", ErrInvalidResponse, err)}
	}
	if len(chat.Choices) == 0 {
		return &Error{Op: op, Err: fmt.Errorf("%w: no choices", ErrInvalidResponse)}
	}
	if err := json.Unmarshal([]byte(stripFence(chat.Choices[0].Message.Content)), out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("%w: decode content: %v", ErrInvalidResponse, err)}
	}
	return nil
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
