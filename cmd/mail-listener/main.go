package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ordersift/internal/catalog"
	"ordersift/internal/config"
	"ordersift/internal/listener"
	"ordersift/internal/llm"
	"ordersift/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	index, err := catalog.Load(cfg.CatalogPath)
	must(err)

	client, err := makeClient(ctx, cfg)
	must(err)

	orchestrator := pipeline.NewOrchestrator(index, client, pipeline.Mode(cfg.ValidationMode))
	svc := listener.NewService(orchestrator, cfg)
	must(svc.Run(ctx))
}

func makeClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "openai":
		if err := cfg.Require("OPENAI_API_KEY", cfg.OpenAIAPIKey); err != nil {
			return nil, err
		}
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			TimeoutMs:   cfg.LLMTimeoutMs,
			RateLimit:   cfg.LLMRateLimit,
		}), nil
	case "gemini":
		if err := cfg.Require("GEMINI_API_KEY", cfg.GeminiAPIKey); err != nil {
			return nil, err
		}
		return llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			TimeoutMs:   cfg.LLMTimeoutMs,
			RateLimit:   cfg.LLMRateLimit,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
