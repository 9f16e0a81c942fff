// Package mind provides the AI-interpreted command service: free-text
// requests are turned into small typed command scripts via the Claude Haiku
// API and replayed sequentially against an agent's command surface.
package mind

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	defaultEndpoint  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	haikuModel       = "claude-haiku-4-5-20251001"

	// Upstream calls allowed per rolling minute, across all requesters.
	callBudget = 20
)

// Client wraps the Anthropic Messages API for Haiku calls. The zero value is
// unusable; a nil Client is the disabled state and every method tolerates it.
type Client struct {
	key      string
	endpoint string
	http     *http.Client

	// recent holds the timestamps of calls inside the rolling minute.
	mu     sync.Mutex
	recent []time.Time
}

// NewClient creates a Haiku API client, or nil when apiKey is empty so
// interpreted commands stay disabled.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		key:      apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the client can make calls.
func (c *Client) Enabled() bool {
	return c != nil && c.key != ""
}

// reserve claims a slot in the rolling-minute budget.
func (c *Client) reserve() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-time.Minute)
	kept := c.recent[:0]
	for _, t := range c.recent {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.recent = kept

	if len(c.recent) >= callBudget {
		return fmt.Errorf("model call budget exhausted (%d/min)", callBudget)
	}
	c.recent = append(c.recent, time.Now())
	return nil
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Model     string     `json:"model"`
	MaxTokens int        `json:"max_tokens"`
	System    string     `json:"system,omitempty"`
	Messages  []chatTurn `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatResult struct {
	Content []contentBlock `json:"content"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system+user exchange to Haiku and returns the first
// text block of the reply. The context bounds the whole round trip, so a
// cancelled HTTP request cancels the upstream call too.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("mind client not configured")
	}
	if err := c.reserve(); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatPayload{
		Model:     haikuModel,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []chatTurn{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.key)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}

	var result chatResult
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("model returned %d", resp.StatusCode)
		}
		return "", fmt.Errorf("decode reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != nil {
			return "", fmt.Errorf("model error (%s): %s", result.Error.Type, result.Error.Message)
		}
		return "", fmt.Errorf("model returned %d", resp.StatusCode)
	}

	slog.Debug("haiku call",
		"input_tokens", result.Usage.InputTokens,
		"output_tokens", result.Usage.OutputTokens,
	)

	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("reply had no text content")
}
