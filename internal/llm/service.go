package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/RichardoC/synxai/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Generator turns a prompt into the model's completion text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// completer is one provider backend.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
	close() error
}

type Service struct {
	backend completer
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New builds the gateway for cfg.Provider. The returned Service must be closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	var (
		backend completer
		err     error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		backend, err = newGemini(ctx, cfg.GoogleAPIKey, cfg.Model)
	case config.ProviderOpenAI:
		backend, err = newLangChain(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model)
	default:
		err = fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &Service{
		backend: backend,
		model:   cfg.Model,
		timeout: cfg.LLMTimeout,
		logger:  logger,
	}, nil
}

// NewWithModel wraps an existing langchaingo model, e.g. a fake in tests.
func NewWithModel(model llms.Model, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		backend: &langChainBackend{llm: model},
		model:   "custom",
		timeout: timeout,
		logger:  logger,
	}
}

// Generate sends prompt as-is and returns the completion verbatim.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	completion, err := s.backend.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	s.logger.Debug("Generated completion",
		zap.String("model", s.model),
		zap.Int("promptLen", len(prompt)),
		zap.Int("completionLen", len(completion)),
		zap.Duration("took", time.Since(start)))

	return completion, nil
}

func (s *Service) Close() error {
	return s.backend.close()
}

type langChainBackend struct {
	llm llms.Model
}

func newLangChain(baseURL, token, model string) (*langChainBackend, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &langChainBackend{llm: llm}, nil
}

func (b *langChainBackend) complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, b.llm, prompt)
}

func (b *langChainBackend) close() error { return nil }
