package model

// ResponseBundle is the complete output of one orchestrator turn. Callers
// append Messages to their display log, merge FieldUpdates into a display
// copy of the profile, update the progress indicator from
// StageStatusUpdates, and store Offers for later selection.
type ResponseBundle struct {
	Messages           []Message           `json:"messages"`
	FieldUpdates       *ProfileUpdate      `json:"field_updates,omitempty"`
	NextStage          Stage               `json:"next_stage,omitempty"`
	StageStatusUpdates []StageStatusUpdate `json:"stage_status_updates,omitempty"`
	Offers             []LoanOffer         `json:"offers,omitempty"`
}

// Merge appends a follow-up bundle produced in the same turn (for example
// the Offer stage output chained after Sales completion). The later bundle
// wins on NextStage and overlays FieldUpdates.
func (b *ResponseBundle) Merge(next *ResponseBundle) {
	if next == nil {
		return
	}
	b.Messages = append(b.Messages, next.Messages...)
	b.FieldUpdates = b.FieldUpdates.Merge(next.FieldUpdates)
	if next.NextStage != "" {
		b.NextStage = next.NextStage
	}
	b.StageStatusUpdates = append(b.StageStatusUpdates, next.StageStatusUpdates...)
	if len(next.Offers) > 0 {
		b.Offers = next.Offers
	}
}
