package docgen

import (
	"context"
	"time"

	"github.com/Aasthak07/QuillStack-AI/internal/config"
)

// controller implements TextGenerator. It retries the primary model with a
// linear backoff and, once the primary is exhausted, calls the fallback
// model exactly once.
type controller struct {
	gen         Generator
	primary     string
	fallback    string
	maxAttempts int
	baseDelay   time.Duration
	metrics     *Metrics

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController builds the retry/fallback strategy over gen. metrics may be
// nil.
func NewController(gen Generator, cfg config.GeminiConfig, metrics *Metrics) TextGenerator {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &controller{
		gen:         gen,
		primary:     cfg.PrimaryModel,
		fallback:    cfg.FallbackModel,
		maxAttempts: maxAttempts,
		baseDelay:   time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		metrics:     metrics,
		sleep:       sleepCtx,
	}
}

func (c *controller) Generate(ctx context.Context, prompt string) (*Result, error) {
	attempts := 0
	var primaryErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		attempts++
		start := time.Now()
		text, err := c.gen.Generate(ctx, c.primary, prompt)
		c.metrics.observe(c.primary, err, time.Since(start))
		if err == nil {
			return &Result{Text: text, ModelUsed: c.primary, Attempts: attempts}, nil
		}
		primaryErr = err

		if attempt < c.maxAttempts {
			// Linear backoff: delay grows with the attempt number.
			if serr := c.sleep(ctx, time.Duration(attempt)*c.baseDelay); serr != nil {
				return nil, serr
			}
		}
	}

	attempts++
	start := time.Now()
	text, err := c.gen.Generate(ctx, c.fallback, prompt)
	c.metrics.observe(c.fallback, err, time.Since(start))
	if err == nil {
		return &Result{Text: text, ModelUsed: c.fallback, Attempts: attempts}, nil
	}

	return nil, &GenerationError{
		PrimaryModel:  c.primary,
		FallbackModel: c.fallback,
		Primary:       primaryErr,
		Fallback:      err,
	}
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
