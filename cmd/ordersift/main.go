package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ordersift/internal/catalog"
	"ordersift/internal/config"
	"ordersift/internal/listener"
	"ordersift/internal/llm"
	"ordersift/internal/mail"
	gmailconnector "ordersift/internal/mail/gmail"
	imapconnector "ordersift/internal/mail/imap"
	"ordersift/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := os.Args[1]
	switch cmd {
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "email file (.txt or .eml)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		orchestrator, err := buildOrchestrator(ctx, cfg)
		must(err)
		content, err := readEmailFile(*file)
		must(err)
		result := orchestrator.ProcessEmail(ctx, content, filepath.Base(*file))
		blob, err := json.MarshalIndent(result, "", "  ")
		must(err)
		fmt.Println(string(blob))
	case "process:all":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		emails := fs.String("emails", cfg.EmailsDir, "directory of email files")
		out := fs.String("out", "", "optional output xlsx path")
		_ = fs.Parse(os.Args[2:])
		orchestrator, err := buildOrchestrator(ctx, cfg)
		must(err)
		results, err := orchestrator.ProcessAllEmails(ctx, *emails)
		must(err)
		succeeded := 0
		for filename, result := range results {
			if result.Success {
				succeeded++
			}
			fmt.Printf("%s success=%v found=%d missing=%d total=%.2f\n",
				filename, result.Success, result.Summary.ProductsFound, result.Summary.ProductsMissing, result.Summary.TotalPrice)
		}
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportResultsToXLSX(results, *out))
			fmt.Printf("exported %d results to %s\n", len(results), *out)
		}
		fmt.Printf("processed %d emails, %d succeeded\n", len(results), succeeded)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		emails := fs.String("emails", cfg.EmailsDir, "directory of email files")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		orchestrator, err := buildOrchestrator(ctx, cfg)
		must(err)
		results, err := orchestrator.ProcessAllEmails(ctx, *emails)
		must(err)
		must(pipeline.ExportResultsToXLSX(results, *out))
		fmt.Printf("exported %d results to %s\n", len(results), *out)
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "gmail", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := mail.NewFetchService(cfg.InboxDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "mail:listen":
		orchestrator, err := buildOrchestrator(ctx, cfg)
		must(err)
		s := listener.NewService(orchestrator, cfg)
		must(s.Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func buildOrchestrator(ctx context.Context, cfg config.Config) (*pipeline.Orchestrator, error) {
	index, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	client, err := makeClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewOrchestrator(index, client, pipeline.Mode(cfg.ValidationMode)), nil
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

func makeConnector(cfg config.Config, provider string) (mail.Connector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func readEmailFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".eml") {
		return mail.ExtractText(raw)
	}
	return string(raw), nil
}

func usage() {
	fmt.Println("usage: ordersift <command>")
	fmt.Println("commands:")
	fmt.Println("  process --file=./data/emails/order.txt")
	fmt.Println("  process:all [--emails=./data/emails] [--out=./out/orders.xlsx]")
	fmt.Println("  export:xlsx --out=./out/orders.xlsx [--emails=./data/emails]")
	fmt.Println("  mail:fetch --provider=gmail|imap --label=INBOX --max=50")
	fmt.Println("  mail:listen")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
