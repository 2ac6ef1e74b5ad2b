package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 1000
)

type ClaudeClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
	maxTokens  int
}

func NewClaudeClient(apiKey, model string, maxTokens int) *ClaudeClient {
	return NewClaudeClientWithURL(apiKey, model, maxTokens, "https://api.anthropic.com/v1")
}

func NewClaudeClientWithURL(apiKey, model string, maxTokens int, baseURL string) *ClaudeClient {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ClaudeClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		maxTokens:  maxTokens,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *ClaudeClient) Process(ctx context.Context, transcript string, prompt domain.Prompt) (string, error) {
	reqBody := request{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    prompt.System,
		Messages: []message{
			{Role: "user", Content: prompt.UserMessage(transcript)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckResponse("claude", resp); err != nil {
		return "", err
	}

	var result response
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	var sb strings.Builder
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from claude")
	}

	return sb.String(), nil
}
