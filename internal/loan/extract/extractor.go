// Package extract turns free-form user text into structured applicant
// profile fields, either through the external text-generation dependency or
// through a deterministic rule-based fallback.
package extract

import (
	"context"

	"github.com/finsage-core-poc/server/internal/loan/model"
	"github.com/finsage-core-poc/server/internal/loan/prompts"
)

// FieldExtractor drives the LLM-backed extraction path. Exactly one
// generation attempt per user turn; the orchestrator owns fallback routing.
type FieldExtractor struct {
	gen     Generator
	persona model.PersonaConfig
}

// NewFieldExtractor wires the injected generation capability.
func NewFieldExtractor(gen Generator, persona model.PersonaConfig) *FieldExtractor {
	return &FieldExtractor{gen: gen, persona: persona}
}

// Extract renders the extraction prompt for the known profile and new user
// text, runs one generation attempt, and parses the reply. Malformed model
// output is reported as an error, identical to an outright generation
// failure.
func (e *FieldExtractor) Extract(ctx context.Context, profile model.ApplicantProfile, userText string) (*Result, error) {
	prompt, err := prompts.RenderSalesExtraction(ctx, e.persona, profile, userText)
	if err != nil {
		return nil, err
	}

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseExtractionResponse(raw)
}
