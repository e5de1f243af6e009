package docgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aasthak07/QuillStack-AI/internal/config"
)

// scriptedGenerator fails a fixed number of times per model, then succeeds.
type scriptedGenerator struct {
	failures map[string]int
	texts    map[string]string
	errs     map[string]error
	calls    []string
}

func (g *scriptedGenerator) Generate(_ context.Context, model, _ string) (string, error) {
	g.calls = append(g.calls, model)
	if g.failures[model] > 0 {
		g.failures[model]--
		if err, ok := g.errs[model]; ok {
			return "", err
		}
		return "", &ModelError{Model: model, Reason: ReasonTransientNetwork, Err: errors.New("boom")}
	}
	return g.texts[model], nil
}

func testGeminiConfig() config.GeminiConfig {
	return config.GeminiConfig{
		PrimaryModel:     "gemini-2.0-flash",
		FallbackModel:    "gemini-2.5-flash",
		MaxAttempts:      3,
		RetryBaseDelayMs: 1000,
	}
}

func newTestController(gen Generator) (*controller, *[]time.Duration) {
	c := NewController(gen, testGeminiConfig(), nil).(*controller)
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestController_PrimarySucceedsFirstTry(t *testing.T) {
	gen := &scriptedGenerator{texts: map[string]string{"gemini-2.0-flash": "docs"}}
	c, slept := newTestController(gen)

	res, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "docs", res.Text)
	assert.Equal(t, "gemini-2.0-flash", res.ModelUsed)
	assert.Equal(t, 1, res.Attempts)
	assert.Empty(t, *slept)
}

func TestController_PrimaryRecoversAfterRetries(t *testing.T) {
	for k := 1; k <= 2; k++ {
		gen := &scriptedGenerator{
			failures: map[string]int{"gemini-2.0-flash": k},
			texts:    map[string]string{"gemini-2.0-flash": "docs"},
		}
		c, slept := newTestController(gen)

		res, err := c.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.0-flash", res.ModelUsed)
		assert.Equal(t, k+1, res.Attempts)
		assert.Len(t, gen.calls, k+1)
		assert.NotContains(t, gen.calls, "gemini-2.5-flash")
		assert.Len(t, *slept, k)
	}
}

func TestController_LinearBackoff(t *testing.T) {
	gen := &scriptedGenerator{
		failures: map[string]int{"gemini-2.0-flash": 2},
		texts:    map[string]string{"gemini-2.0-flash": "docs"},
	}
	c, slept := newTestController(gen)

	_, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestController_FallbackAfterPrimaryExhausted(t *testing.T) {
	gen := &scriptedGenerator{
		failures: map[string]int{"gemini-2.0-flash": 3},
		texts:    map[string]string{"gemini-2.5-flash": "fallback docs"},
	}
	c, _ := newTestController(gen)

	res, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "fallback docs", res.Text)
	assert.Equal(t, "gemini-2.5-flash", res.ModelUsed)
	assert.Equal(t, 4, res.Attempts)
	assert.Equal(t, []string{
		"gemini-2.0-flash", "gemini-2.0-flash", "gemini-2.0-flash", "gemini-2.5-flash",
	}, gen.calls)
}

func TestController_BothModelsFail(t *testing.T) {
	primaryErr := &ModelError{Model: "gemini-2.0-flash", Reason: ReasonTransientNetwork, Err: errors.New("timeout")}
	fallbackErr := &ModelError{Model: "gemini-2.5-flash", Reason: ReasonQuotaExceeded, Err: errors.New("quota")}
	gen := &scriptedGenerator{
		failures: map[string]int{"gemini-2.0-flash": 3, "gemini-2.5-flash": 1},
		errs: map[string]error{
			"gemini-2.0-flash": primaryErr,
			"gemini-2.5-flash": fallbackErr,
		},
	}
	c, _ := newTestController(gen)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "gemini-2.0-flash", genErr.PrimaryModel)
	assert.Equal(t, "gemini-2.5-flash", genErr.FallbackModel)
	assert.Contains(t, err.Error(), "Primary: "+primaryErr.Error())
	assert.Contains(t, err.Error(), "Fallback: "+fallbackErr.Error())
	assert.Equal(t, ReasonQuotaExceeded, genErr.Reason())
	assert.Len(t, gen.calls, 4)
}

func TestController_ContextCancelledDuringBackoff(t *testing.T) {
	gen := &scriptedGenerator{failures: map[string]int{"gemini-2.0-flash": 3}}
	c := NewController(gen, testGeminiConfig(), nil).(*controller)
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, gen.calls, 1, "no further calls after cancellation")
}
