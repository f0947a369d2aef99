package suggest

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

	"cvpress/internal/config"
)

// Client is a minimal OpenAI-compatible chat completions client.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpDo  *http.Client
}

// NewClient builds a client from configuration. The base URL defaults to an
// OpenAI-compatible endpoint layout (`<base>/chat/completions`).
func NewClient(cfg config.SuggestConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   cfg.Model,
		httpDo:  &http.Client{Timeout: 60 * time.Second},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var sectionPrompts = map[string]string{
	"summary":    "You improve resume summaries. Rewrite the text as a tight 2-3 sentence professional summary. Reply with the summary only.",
	"experience": "You improve resume experience bullet points. Rewrite the text with strong action verbs and concrete outcomes. Reply with the rewritten text only.",
	"projects":   "You improve resume project descriptions. Rewrite the text to highlight scope and technology. Reply with the rewritten text only.",
}

const defaultPrompt = "You improve resume text. Rewrite the following concisely and professionally. Reply with the rewritten text only."

// Suggest asks the model to improve the given section text.
func (c *Client) Suggest(ctx context.Context, section, current string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("suggest api key is empty")
	}
	system, ok := sectionPrompts[section]
	if !ok {
		system = defaultPrompt
	}

	reqBody := chatCompletionsRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: current},
		},
		Temperature: 0.2,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return "", fmt.Errorf("call suggest endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read suggest response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggest endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode suggest response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("suggest response has no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
