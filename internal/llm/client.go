package llm

import "context"

// Client is the external text-generation capability: given a prompt,
// return a completion. Implementations hold their own default model and
// temperature; per-call overrides go through Options. Cross-cutting
// concerns (timeouts, rate limiting) belong to the implementations, not
// to callers.
type Client interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
	Name() string
}

type CallOptions struct {
	Model       string
	Temperature *float64
}

type Option func(*CallOptions)

func WithModel(model string) Option {
	return func(o *CallOptions) { o.Model = model }
}

func WithTemperature(temperature float64) Option {
	return func(o *CallOptions) { o.Temperature = &temperature }
}

func applyOptions(opts []Option) CallOptions {
	var out CallOptions
	for _, opt := range opts {
		opt(&out)
	}
	return out
}
