// Package inference is the client for the external completion endpoint that
// provides chat replies and image generation. The endpoint is opaque: one
// transport, different model identifiers per capability.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/athuyarain/burme-mark/internal/domain"
	"github.com/tidwall/gjson"
)

// SystemPrompt prefixes every chat completion request.
const SystemPrompt = "You are Burme Mark, a helpful Myanmar AI assistant. " +
	"Respond in Myanmar language (Burmese) when appropriate, and be friendly and helpful. " +
	"You can also respond in English if needed."

// maxResponseBytes caps how much of a completion response is read.
const maxResponseBytes = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	CustomerID string
	AuthToken  string
	ChatModel  string
	ImageModel string
	Timeout    time.Duration
}

// Client calls the external chat/completions endpoint.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// New returns a client for the configured endpoint.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		opts:       opts,
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

// Chat sends the persisted conversation plus the new user message and returns
// the assistant reply text. Typing placeholders are never sent.
func (c *Client) Chat(ctx context.Context, history []domain.ChatMessage, userMessage string) (string, error) {
	messages := make([]wireMessage, 0, len(history)+2)
	messages = append(messages, wireMessage{Role: "system", Content: SystemPrompt})
	for _, m := range history {
		if m.IsTyping {
			continue
		}
		messages = append(messages, wireMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, wireMessage{Role: domain.RoleUser, Content: userMessage})

	return c.complete(ctx, completionRequest{Model: c.opts.ChatModel, Messages: messages})
}

// GenerateImage sends a single prompt to the image model and returns the
// generated image URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	url, err := c.complete(ctx, completionRequest{
		Model:    c.opts.ImageModel,
		Messages: []wireMessage{{Role: domain.RoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", fmt.Errorf("completion returned no image URL")
	}
	return url, nil
}

func (c *Client) complete(ctx context.Context, reqBody completionRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.CustomerID != "" {
		req.Header.Set("customerId", c.opts.CustomerID)
	}
	if c.opts.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("completion response missing choices.0.message.content")
	}
	return content.String(), nil
}
