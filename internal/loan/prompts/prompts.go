// Package prompts renders the engine's prompt templates via the Eino prompt
// component so prompt callbacks fire for observability tooling.
package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

//go:embed template/sales_extraction.txt
var salesExtractionPrompt string

//go:embed template/offer_announcement.txt
var offerAnnouncementPrompt string

// RenderSalesExtraction renders the field-extraction prompt for one Sales
// turn from the known profile snapshot and the raw user text.
func RenderSalesExtraction(ctx context.Context, persona model.PersonaConfig, profile model.ApplicantProfile, userText string) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	return render(ctx, salesExtractionPrompt, map[string]any{
		"AssistantName": persona.AssistantName,
		"NetworkName":   persona.NetworkName,
		"Profile":       string(profileJSON),
		"UserText":      userText,
	})
}

// RenderOfferAnnouncement renders the one-sentence offer announcement prompt.
func RenderOfferAnnouncement(ctx context.Context, persona model.PersonaConfig, profile model.ApplicantProfile, offerCount int) (string, error) {
	return render(ctx, offerAnnouncementPrompt, map[string]any{
		"NetworkName": persona.NetworkName,
		"Amount":      profile.RequestedAmount,
		"Purpose":     profile.Purpose,
		"OfferCount":  offerCount,
	})
}

func render(ctx context.Context, template string, vars map[string]any) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(template),
	)
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}
