package docgen

import (
	"context"
	"fmt"
)

// Package docgen turns source files into markdown documentation by driving a
// text-generation model with retry and model fallback.

// MinDocumentationChars is the minimum length of generated documentation
// (after trimming) for a generation to count as successful.
const MinDocumentationChars = 100

// FailureReason classifies why a model call failed. Classification happens
// once, at the model-client boundary; everything downstream switches on the
// reason instead of re-parsing error strings.
type FailureReason string

const (
	ReasonQuotaExceeded    FailureReason = "quota_exceeded"
	ReasonSafetyBlocked    FailureReason = "safety_blocked"
	ReasonTransientNetwork FailureReason = "transient_network"
	ReasonUnknown          FailureReason = "unknown"
)

// UserMessage returns the user-facing message for the failure reason.
func (r FailureReason) UserMessage() string {
	switch r {
	case ReasonQuotaExceeded:
		return "API quota exceeded. Please try again later."
	case ReasonSafetyBlocked:
		return "Content was blocked by safety filters. Please review your code."
	case ReasonTransientNetwork:
		return "Temporary network problem while contacting the model. Please try again."
	default:
		return "Failed to generate documentation"
	}
}

// ModelError is a classified failure from a single model call.
type ModelError struct {
	Model  string
	Reason FailureReason
	Err    error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %s: %v", e.Model, e.Reason, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// Generator produces raw documentation text from a prompt using a named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Result is the outcome of a successful generation run.
type Result struct {
	// Text is the raw model output, not yet post-processed.
	Text string
	// ModelUsed names the model that produced Text.
	ModelUsed string
	// Attempts counts every model call made, including the fallback call.
	Attempts int
}

// TextGenerator runs the full retry/fallback strategy for one prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*Result, error)
}

// GenerationError reports that both the primary and the fallback model
// failed for a prompt.
type GenerationError struct {
	PrimaryModel  string
	FallbackModel string
	Primary       error
	Fallback      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Primary: %v. Fallback: %v", e.Primary, e.Fallback)
}

// Reason returns the classified failure reason, preferring the fallback
// model's since it failed last.
func (e *GenerationError) Reason() FailureReason {
	if me, ok := e.Fallback.(*ModelError); ok {
		return me.Reason
	}
	if me, ok := e.Primary.(*ModelError); ok {
		return me.Reason
	}
	return ReasonUnknown
}

func (e *GenerationError) Unwrap() error { return e.Fallback }
