package advice

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
)

// Options selects and configures the provider.
type Options struct {
	// APIKey enables the generated provider when non-empty.
	APIKey   string
	Model    string
	Timeout  time.Duration
	Language string
	Prompts  Prompter
}

// NewProvider returns the generated provider when a credential is available
// and the fallback table otherwise. A client that cannot be built also
// selects the fallback.
func NewProvider(ctx context.Context, opts Options) Provider {
	fallback := NewFallback(opts.Language)
	if opts.APIKey == "" || opts.Prompts == nil {
		slog.Info(config.MsgAdviceProvider,
			config.LogKeyComponent, config.CompAdvice,
			config.LogKeyProvider, fallback.Name(),
		)
		return fallback
	}

	gen, err := NewGeminiGenerator(ctx, opts.APIKey, opts.Model)
	if err != nil {
		slog.Warn(config.MsgAdviceFallback,
			config.LogKeyComponent, config.CompAdvice,
			config.LogKeyError, err,
		)
		return fallback
	}

	p := NewGenerated(gen, opts.Prompts, fallback, opts.Timeout)
	slog.Info(config.MsgAdviceProvider,
		config.LogKeyComponent, config.CompAdvice,
		config.LogKeyProvider, p.Name(),
		config.LogKeyModel, gen.model,
	)
	return p
}
