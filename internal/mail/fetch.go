package mail

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"ordersift/internal"
)

// Connector fetches unread mail from a provider inbox.
type Connector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}

// FetchService stores fetched raw messages as .eml files in the inbox
// directory, where the batch loader and pipeline pick them up.
// Content-hash filenames make refetching the same message a no-op.
type FetchService struct {
	inboxDir  string
	connector Connector
}

type FetchResult struct {
	Fetched int
	Stored  int
}

func NewFetchService(inboxDir string, connector Connector) *FetchService {
	return &FetchService{inboxDir: inboxDir, connector: connector}
}

func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	stored := 0
	for _, msg := range messages {
		fresh, err := s.store(msg)
		if err != nil {
			return FetchResult{Fetched: len(messages), Stored: stored}, err
		}
		if fresh {
			stored++
		}
	}

	return FetchResult{Fetched: len(messages), Stored: stored}, nil
}

func (s *FetchService) store(msg internal.FetchedMailMessage) (bool, error) {
	hashBytes := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(hashBytes[:])

	if err := os.MkdirAll(s.inboxDir, 0o755); err != nil {
		return false, err
	}

	rawPath := filepath.Join(s.inboxDir, hash+".eml")
	if _, err := os.Stat(rawPath); err == nil {
		return false, nil
	}
	if err := os.WriteFile(rawPath, msg.Raw, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
