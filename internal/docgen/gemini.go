package docgen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/genai"

	"github.com/Aasthak07/QuillStack-AI/internal/config"
)

// geminiGenerator implements Generator against the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	cfg    config.GeminiConfig
}

// NewGemini creates a Gemini-backed Generator.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiGenerator{client: client, cfg: cfg}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		TopK:            genai.Ptr(float32(40)),
		TopP:            genai.Ptr(float32(0.95)),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", &ModelError{Model: model, Reason: classify(err), Err: err}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		err := fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		return "", &ModelError{Model: model, Reason: ReasonSafetyBlocked, Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		err := errors.New("model returned empty response")
		return "", &ModelError{Model: model, Reason: ReasonUnknown, Err: err}
	}
	return text, nil
}

// classify maps a transport-level error onto a FailureReason. It inspects
// the API status code first and falls back to error-type checks.
func classify(err error) FailureReason {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return ReasonQuotaExceeded
		case apiErr.Code >= 500:
			return ReasonTransientNetwork
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ReasonTransientNetwork
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"):
		return ReasonQuotaExceeded
	case strings.Contains(msg, "safety"):
		return ReasonSafetyBlocked
	}
	return ReasonUnknown
}
