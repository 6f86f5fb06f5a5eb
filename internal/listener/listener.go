package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ordersift/internal/config"
	"ordersift/internal/mail"
	gmailconnector "ordersift/internal/mail/gmail"
	imapconnector "ordersift/internal/mail/imap"
	"ordersift/internal/pipeline"
)

// Service polls a mail provider, stores fresh messages in the inbox
// directory and runs the order pipeline over everything in it.
type Service struct {
	orchestrator *pipeline.Orchestrator
	cfg          config.Config
}

func NewService(orchestrator *pipeline.Orchestrator, cfg config.Config) *Service {
	return &Service{orchestrator: orchestrator, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.ListenerProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := mail.NewFetchService(s.cfg.InboxDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.ListenerLabel, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	results, err := s.orchestrator.ProcessAllEmails(ctx, s.cfg.InboxDir)
	if err != nil {
		return err
	}

	if s.cfg.ListenerAutoExport && len(results) > 0 {
		outputPath := filepath.Join(s.cfg.OutputDir, "listener", fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405")))
		if err := pipeline.ExportResultsToXLSX(results, outputPath); err != nil {
			return err
		}
	}

	fmt.Printf("listener cycle done provider=%s fetched=%d stored=%d processed=%d\n", provider, fetchResult.Fetched, fetchResult.Stored, len(results))
	return nil
}

func (s *Service) makeConnector(provider string) (mail.Connector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}
