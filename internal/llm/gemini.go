package llm

import (
	"context"
	"fmt"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient wraps the official genai client behind the Client
// interface so the pipeline stays provider-agnostic.
type GeminiClient struct {
	cli         *genai.Client
	model       string
	temperature float64
	timeout     time.Duration
	limiter     *RateLimiter
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	TimeoutMs   int
	RateLimit   int
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 60000
	}
	return &GeminiClient{
		cli:         cli,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     time.Duration(cfg.TimeoutMs) * time.Millisecond,
		limiter:     NewRateLimiter(cfg.RateLimit),
	}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

func (g *GeminiClient) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	call := applyOptions(opts)
	model := g.model
	if call.Model != "" {
		model = call.Model
	}
	temperature := g.temperature
	if call.Temperature != nil {
		temperature = *call.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.limiter.WaitTurn()
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(float32(temperature))},
	)
	if err != nil {
		return "", &CompletionError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &CompletionError{Provider: "gemini", Err: fmt.Errorf("empty candidates")}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
