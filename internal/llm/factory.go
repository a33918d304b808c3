package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/algebrix/algebrix/internal/store"
)

// NewProvider builds the configured vendor provider and wraps it in the
// decorators. A config without a usable provider is an error.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// retry -> validation -> logging -> vendor
	p := WithLogging(base, eventRepo, logger)
	p = WithValidation(p)
	return WithRetry(p, cfg.Retry, cfg.Timeout, logger), nil
}
