package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIClient calls an OpenAI-compatible Chat Completions endpoint.
type OpenAIClient struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	limiter     *RateLimiter
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	TimeoutMs   int
	RateLimit   int
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 60000
	}
	return &OpenAIClient{
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		limiter:     NewRateLimiter(cfg.RateLimit),
	}
}

func (c *OpenAIClient) Name() string { return "openai:" + c.model }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	call := applyOptions(opts)
	model := c.model
	if call.Model != "" {
		model = call.Model
	}
	temperature := c.temperature
	if call.Temperature != nil {
		temperature = *call.Temperature
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}
	blob, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(blob))
	if err != nil {
		return "", &CompletionError{Provider: "openai", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.limiter.WaitTurn()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &CompletionError{Provider: "openai", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(body) > max {
			body = body[:max]
		}
		return "", &CompletionError{Provider: "openai", Err: fmt.Errorf("unexpected status %s: %s", resp.Status, string(body))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &CompletionError{Provider: "openai", Err: err}
	}
	if len(out.Choices) == 0 {
		return "", &CompletionError{Provider: "openai", Err: fmt.Errorf("empty choices")}
	}
	return out.Choices[0].Message.Content, nil
}
