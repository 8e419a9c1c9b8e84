package model

import "context"

// Session holds the dialogue state for one conversation. It lives for the
// duration of the conversation and is discarded when the session ends.
// Access is strictly sequential: one event fully resolves before the next.
type Session struct {
	ID              string
	Stage           Stage
	Profile         ApplicantProfile
	Offers          []LoanOffer
	SelectedOfferID string
}

// NewSession returns a fresh session parked at the Intake stage.
func NewSession(id string) *Session {
	return &Session{ID: id, Stage: StageIntake}
}

// Apply folds a response bundle into the session state. Field updates merge
// monotonically, the stage advances when the bundle requests it, and the
// offer batch is fixed once generated.
func (s *Session) Apply(b *ResponseBundle) {
	if b == nil {
		return
	}
	s.Profile.Apply(b.FieldUpdates)
	if b.NextStage != "" {
		s.Stage = b.NextStage
	}
	if len(b.Offers) > 0 && len(s.Offers) == 0 {
		s.Offers = b.Offers
	}
}

// FindOffer returns the offer with the given id from the session batch.
func (s *Session) FindOffer(offerID string) (LoanOffer, bool) {
	for _, o := range s.Offers {
		if o.ID == offerID {
			return o, true
		}
	}
	return LoanOffer{}, false
}

// MessageLog is the append-only transcript store shared with the
// presentation layer.
type MessageLog interface {
	// Append adds a message to the session transcript.
	Append(ctx context.Context, sessionID string, msg Message) error

	// History returns the full transcript for a session.
	History(ctx context.Context, sessionID string) ([]Message, error)

	// Clear removes the transcript for a session.
	Clear(ctx context.Context, sessionID string) error

	// Count returns the number of messages in the transcript.
	Count(ctx context.Context, sessionID string) (int, error)
}
