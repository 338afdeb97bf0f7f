package ai

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

	"github.com/hnguyen/assistant-backend/internal/model"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
	apiURL           = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
)

// UpstreamError indicates the AI service failed or was unreachable. The
// failure is scoped to the request that triggered it.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai service error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai service error: %s", e.Message)
}

// IsUpstream reports whether err (or any error in its chain) is an
// UpstreamError.
func IsUpstream(err error) bool {
	var uerr *UpstreamError
	return errors.As(err, &uerr)
}

// Client talks to the Claude messages API for content generation work:
// summarization and flashcard creation.
type Client struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New creates a Claude API client with the given configuration.
func New(apiKey, modelName string, maxTokens int, opts ...Option) *Client {
	if modelName == "" {
		modelName = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	c := &Client{
		apiKey:    apiKey,
		model:     modelName,
		maxTokens: maxTokens,
		baseURL:   apiURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summarize returns a concise summary of the given content.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	return c.complete(ctx,
		"Provide a concise summary of the content the user sends. "+
			"Answer with the summary text only.",
		content,
	)
}

// GenerateFlashcards produces question/answer study cards from the
// given content.
func (c *Client) GenerateFlashcards(
	ctx context.Context,
	content string,
) ([]model.Flashcard, error) {
	text, err := c.complete(ctx,
		"Generate study flashcards from the content the user sends. "+
			"Answer with a JSON array of objects with \"question\" and "+
			"\"answer\" string fields and nothing else.",
		content,
	)
	if err != nil {
		return nil, err
	}

	var cards []model.Flashcard
	if err := json.Unmarshal([]byte(extractJSONArray(text)), &cards); err != nil {
		return nil, &UpstreamError{
			Message: fmt.Sprintf("unparseable flashcard response: %v", err),
		}
	}

	return cards, nil
}

// complete sends a single-turn request and returns the concatenated
// text blocks of the response.
func (c *Client) complete(
	ctx context.Context,
	system, userMsg string,
) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages: []apiMessage{
			{
				Role:    "user",
				Content: []apiContentBlock{{Type: "text", Text: userMsg}},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL, bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", &UpstreamError{
				StatusCode: resp.StatusCode,
				Message:    apiErr.Error.Message,
			}
		}
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("decoding response: %v", err)}
	}

	var parts []string
	for _, block := range result.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}

	return strings.Join(parts, ""), nil
}

// extractJSONArray trims any prose around the first top-level JSON array
// in s. Models occasionally wrap the payload in code fences or a
// sentence despite instructions.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// --- Claude API types ---

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
