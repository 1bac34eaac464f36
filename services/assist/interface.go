package assist

import (
	"context"

	"urbania/models"
)

// TextGenerator abstracts the LLM completion call: one prompt in, generated
// text out. The model is untrusted; callers own all output validation.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AssistService turns free-text project descriptions into structured
// form-filling hints. Transport and parsing failures never propagate:
// every operation has a documented fallback value.
type AssistService interface {
	// AnalyzeProject extracts materials, colors, and height. The result
	// always carries all five keys; failure yields the all-null shape.
	AnalyzeProject(ctx context.Context, description string) *models.ProjectAnalysis
	// SuggestDocuments maps the eight DP piece identifiers to their
	// obligation. Returns nil on failure, meaning "no suggestion".
	SuggestDocuments(ctx context.Context, description string) map[string]bool
	// ConfigureProject builds a form configuration for a custom project
	// type. Never returns nil; failure yields a fixed default
	// configuration, and dp1/dp7 are always in RequiredDocuments.
	ConfigureProject(ctx context.Context, description string) *models.ProjectConfiguration
	// GenerateDescription produces a short plain-text project
	// description, with a canned sentence as fallback.
	GenerateDescription(ctx context.Context, req models.DescriptionRequest) string
}
