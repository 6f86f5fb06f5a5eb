package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogPath string
	EmailsDir   string
	InboxDir    string
	OutputDir   string

	LLMProvider    string
	LLMModel       string
	LLMTemperature float64
	LLMTimeoutMs   int
	LLMRateLimit   int
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	GeminiAPIKey   string

	ValidationMode string

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	ListenerProvider    string
	ListenerLabel       string
	ListenerIntervalSec int
	ListenerFetchMax    int
	ListenerAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		CatalogPath: getEnv("CATALOG_PATH", filepath.Join(cwd, "data", "product_catalog.csv")),
		EmailsDir:   getEnv("EMAILS_DIR", filepath.Join(cwd, "data", "emails")),
		InboxDir:    getEnv("INBOX_DIR", filepath.Join(cwd, "data", "inbox")),
		OutputDir:   getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o"),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.2),
		LLMTimeoutMs:   getEnvInt("LLM_TIMEOUT_MS", 60000),
		LLMRateLimit:   getEnvInt("LLM_RATE_LIMIT_RPS", 2),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/chat/completions"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),

		ValidationMode: getEnv("VALIDATION_MODE", "local"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		ListenerProvider:    getEnv("MAIL_LISTENER_PROVIDER", "gmail"),
		ListenerLabel:       getEnv("MAIL_LISTENER_LABEL", "INBOX"),
		ListenerIntervalSec: getEnvInt("MAIL_LISTENER_INTERVAL_SEC", 30),
		ListenerFetchMax:    getEnvInt("MAIL_LISTENER_FETCH_MAX", 20),
		ListenerAutoExport:  getEnvBool("MAIL_LISTENER_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
