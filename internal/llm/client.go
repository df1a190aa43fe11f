// Package llm is the OpenAI-compatible chat completion client used for the
// conversational fallback path. One call, one system+user exchange, bounded
// timeout, no retries — a timeout is just a failed call.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// callTimeout bounds the whole HTTP exchange. Fails closed; never retried.
const callTimeout = 30 * time.Second

// ErrNoAPIKey reports that no credential was configured. Callers turn this into
// a configuration-error envelope rather than attempting the call.
var ErrNoAPIKey = errors.New("llm: missing OPENAI_API_KEY")

// HTTPError is a non-2xx provider response. Body is for server-side logs only
// and must never be surfaced verbatim to callers.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("llm: HTTP %d", e.Status)
}

// Client talks to one OpenAI-compatible /chat/completions endpoint.
type Client struct {
	baseURL      string
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

// normalizeBaseURL strips trailing slashes and the "/chat/completions" suffix
// from a raw OPENAI_BASE_URL value so the path is never doubled when the
// client appends "/chat/completions" itself.
//
// Expectations:
//   - Strips a trailing "/chat/completions" suffix
//   - Strips a trailing slash without "/chat/completions"
//   - Strips trailing slash AND "/chat/completions" when both are present
//   - Returns the URL unchanged when neither suffix is present
//   - Returns "" for empty input
func normalizeBaseURL(raw string) string {
	s := strings.TrimRight(raw, "/")
	return strings.TrimSuffix(s, "/chat/completions")
}

// New creates a Client from the shared environment variables:
//
//	OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL
//
// An unset base URL defaults to the public OpenAI endpoint.
func New() *Client {
	base := normalizeBaseURL(os.Getenv("OPENAI_BASE_URL"))
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &Client{
		baseURL:      base,
		apiKey:       os.Getenv("OPENAI_API_KEY"),
		defaultModel: os.Getenv("OPENAI_MODEL"),
		httpClient:   &http.Client{Timeout: callTimeout},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []chatMsg `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends a system persona + user message and returns the assistant's text.
// model overrides the configured default when non-empty.
func (c *Client) Chat(ctx context.Context, system, user, model string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	if model == "" {
		model = c.defaultModel
	}

	payload := chatRequest{
		Model: model,
		Messages: []chatMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[LLM] HTTP %d from %s: %s", resp.StatusCode, url, string(respBody))
		return "", &HTTPError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("llm: unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("llm: API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm: no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}
