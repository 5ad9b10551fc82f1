package arena

import "log/slog"

// Option configures an Arena at construction.
type Option func(*config)

type config struct {
	name   string
	mmap   bool
	budget *Budget
	logger *slog.Logger
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithName labels the arena in logs and metrics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger used for lifecycle and exhaustion events.
// A nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithBudget charges the arena's capacity against b for the arena's lifetime.
// New fails with ErrBudgetExceeded when b cannot cover the capacity.
func WithBudget(b *Budget) Option {
	return func(c *config) {
		c.budget = b
	}
}

// WithMmap backs the arena with an anonymous private memory mapping instead
// of the Go heap. The mapping is returned to the operating system by Destroy.
// On platforms without mmap, New fails with ErrMmapUnsupported.
func WithMmap() Option {
	return func(c *config) {
		c.mmap = true
	}
}
