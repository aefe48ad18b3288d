package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "llama3.1:8b"
)

var ErrMissingCredential = errors.New("GOOGLE_API_KEY environment variable not set")

type Config struct {
	// Server
	Addr      string
	StaticDir string
	LogMode   string

	// Database
	DBPath             string
	EnforceForeignKeys bool

	// LLM
	Provider      string
	Model         string
	GoogleAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMTimeout    time.Duration
}

// Load reads .env (if present) and the process environment. It is meant to be
// called once at startup; the result is passed to constructors from there.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:          getEnvOrDefault("HTTP_ADDR", ":5000"),
		StaticDir:     getEnvOrDefault("STATIC_DIR", "web"),
		LogMode:       getEnvOrDefault("LOG_MODE", "production"),
		DBPath:        getEnvOrDefault("DB_PATH", "chats.db"),
		Provider:      strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderGemini)),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "http://localhost:11434/v1/"),
	}

	var err error
	if cfg.EnforceForeignKeys, err = getEnvAsBool("DB_ENFORCE_FOREIGN_KEYS", false); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getEnvAsDuration("LLM_TIMEOUT", 0); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GoogleAPIKey == "" {
			return nil, ErrMissingCredential
		}
		cfg.Model = getEnvOrDefault("LLM_MODEL", defaultGeminiModel)
	case ProviderOpenAI:
		cfg.Model = getEnvOrDefault("LLM_MODEL", defaultOpenAIModel)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}

// loadDotEnv applies .env (or the given files) to the environment. A missing
// file is fine; one that exists but cannot be parsed is an error.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}
