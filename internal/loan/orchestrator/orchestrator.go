// Package orchestrator owns the dialogue-state engine: given the current
// stage and the latest inbound event it decides which agent speaks next,
// which profile fields change, and which stage-status transitions the
// presentation layer should display.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finsage-core-poc/server/internal/loan/extract"
	"github.com/finsage-core-poc/server/internal/loan/model"
	"github.com/finsage-core-poc/server/internal/loan/offers"
	"github.com/finsage-core-poc/server/internal/loan/prompts"
	logx "github.com/finsage-core-poc/server/pkg/logger"
)

// Caller contract violations. The session state is never mutated when one
// of these is returned.
var (
	ErrUnknownOffer = errors.New("offer not in current batch")
	ErrInvalidEvent = errors.New("event not valid in current stage")
)

const offerAnnouncementFallback = "Great news! I've found these exclusive offers for you."

// Orchestrator drives one conversation at a time. It owns the session's
// profile accumulator and stage; all other state belongs to the caller.
type Orchestrator struct {
	extractor *extract.FieldExtractor
	fallback  extract.FallbackExtractor
	gen       extract.Generator
	offers    offers.Generator
	log       model.MessageLog
	persona   model.PersonaConfig
	now       func() time.Time
	newID     func() string
}

// Config wires the orchestrator's collaborators. Generator is the only
// required field; it is the injected external text-generation capability.
type Config struct {
	Generator extract.Generator
	Offers    offers.Generator
	Log       model.MessageLog
	Persona   model.PersonaConfig
	Now       func() time.Time
	NewID     func() string
}

// New validates the configuration and applies defaults.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("orchestrator: generator is nil")
	}
	if cfg.Offers == nil {
		cfg.Offers = offers.Catalog{}
	}
	if cfg.Persona.AssistantName == "" {
		cfg.Persona.AssistantName = "FinSage"
	}
	if cfg.Persona.NetworkName == "" {
		cfg.Persona.NetworkName = "FinSage Agent Network"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Orchestrator{
		extractor: extract.NewFieldExtractor(cfg.Generator, cfg.Persona),
		gen:       cfg.Generator,
		offers:    cfg.Offers,
		log:       cfg.Log,
		persona:   cfg.Persona,
		now:       cfg.Now,
		newID:     cfg.NewID,
	}, nil
}

// SessionStart produces the opening prompt for a fresh session.
func (o *Orchestrator) SessionStart(ctx context.Context, s *model.Session) (*model.ResponseBundle, error) {
	return o.Advance(ctx, s, nil)
}

// UserText handles one free-text user message. The message joins the
// transcript only once the turn fully resolves, so a discarded turn leaves
// the transcript untouched too.
func (o *Orchestrator) UserText(ctx context.Context, s *model.Session, text string) (*model.ResponseBundle, error) {
	userMsg := o.newMessage(model.RoleUser, text, model.WidgetNone)
	bundle, err := o.advance(ctx, s, &text)
	if err != nil {
		return nil, err
	}
	o.logMessages(ctx, s.ID, append([]model.Message{userMsg}, bundle.Messages...))
	return bundle, nil
}

// OfferSelected handles the external offer-selection event. An id outside
// the presented batch is a caller contract violation and is rejected
// without touching the session.
func (o *Orchestrator) OfferSelected(ctx context.Context, s *model.Session, offerID string) (*model.ResponseBundle, error) {
	if len(s.Offers) == 0 {
		return nil, fmt.Errorf("%w: no offers presented yet", ErrInvalidEvent)
	}
	offer, ok := s.FindOffer(offerID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOffer, offerID)
	}
	if s.SelectedOfferID != "" {
		return nil, fmt.Errorf("%w: an offer is already selected", ErrInvalidEvent)
	}

	bundle := &model.ResponseBundle{
		Messages: []model.Message{
			o.newMessage(model.RoleUser, fmt.Sprintf("I select offer from %s", offer.Provider), model.WidgetNone),
		},
		NextStage: model.StageVerification,
		StageStatusUpdates: []model.StageStatusUpdate{
			{Stage: model.StageOffer, Status: model.StatusCompleted},
			{Stage: model.StageVerification, Status: model.StatusActive},
		},
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Apply(bundle)
	s.SelectedOfferID = offerID
	o.logMessages(ctx, s.ID, bundle.Messages)

	logx.Debug().
		Str("session_id", s.ID).
		Str("offer_id", offerID).
		Str("provider", offer.Provider).
		Msg("Offer selected, handing off to verification")

	// synthetic advance for the Verification opening prompt
	opening, err := o.Advance(ctx, s, nil)
	if err != nil {
		return nil, err
	}
	bundle.Merge(opening)
	return bundle, nil
}

// DocumentsUploaded handles the external document-upload completion event.
// Verification and Underwriting complete in one hop and Sanction becomes
// the active, terminal stage.
func (o *Orchestrator) DocumentsUploaded(ctx context.Context, s *model.Session) (*model.ResponseBundle, error) {
	if s.Stage != model.StageVerification {
		return nil, fmt.Errorf("%w: documents uploaded while in stage %s", ErrInvalidEvent, s.Stage)
	}

	verified := true
	bundle := &model.ResponseBundle{
		Messages: []model.Message{
			o.newMessage(model.RoleAssistant,
				"Documents received and verified successfully! Your identity has been confirmed.",
				model.WidgetVerificationConfirmation),
			o.newMessage(model.RoleAssistant,
				"Based on your profile, I'm pleased to offer you a pre-approved loan. Click below to view your personalized sanction letter.",
				model.WidgetSanctionAction),
		},
		FieldUpdates: &model.ProfileUpdate{
			PANVerified:     &verified,
			AadhaarVerified: &verified,
		},
		NextStage: model.StageSanction,
		StageStatusUpdates: []model.StageStatusUpdate{
			{Stage: model.StageVerification, Status: model.StatusCompleted},
			{Stage: model.StageUnderwriting, Status: model.StatusCompleted},
			{Stage: model.StageSanction, Status: model.StatusActive},
		},
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Apply(bundle)
	o.logMessages(ctx, s.ID, bundle.Messages)
	return bundle, nil
}

// Advance runs one turn of the state machine. A nil userText means "produce
// the stage's opening prompt without consuming user input". The bundle is
// applied to the session only after the turn fully resolves, so a canceled
// context discards the in-flight result with no partial application.
func (o *Orchestrator) Advance(ctx context.Context, s *model.Session, userText *string) (*model.ResponseBundle, error) {
	bundle, err := o.advance(ctx, s, userText)
	if err != nil {
		return nil, err
	}
	o.logMessages(ctx, s.ID, bundle.Messages)
	return bundle, nil
}

// advance is Advance without the transcript append; callers that prepend
// their own messages log the combined sequence themselves.
func (o *Orchestrator) advance(ctx context.Context, s *model.Session, userText *string) (*model.ResponseBundle, error) {
	bundle, err := o.step(ctx, s, userText)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Apply(bundle)

	// The Offer stage never waits for user input; run it as soon as it is
	// entered and merge its output into the same turn.
	for s.Stage == model.StageOffer {
		next, err := o.step(ctx, s, nil)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Apply(next)
		bundle.Merge(next)
	}

	return bundle, nil
}

// step produces the response for the current stage without mutating the
// session.
func (o *Orchestrator) step(ctx context.Context, s *model.Session, userText *string) (*model.ResponseBundle, error) {
	switch s.Stage {
	case model.StageIntake:
		return o.stepIntake(), nil
	case model.StageSales:
		return o.stepSales(ctx, s, userText), nil
	case model.StageOffer:
		return o.stepOffer(ctx, s), nil
	case model.StageVerification:
		return o.stepVerification(), nil
	case model.StageUnderwriting, model.StageSanction:
		// terminal for the text channel; nothing left to say
		return &model.ResponseBundle{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidEvent, s.Stage)
	}
}

func (o *Orchestrator) stepIntake() *model.ResponseBundle {
	greeting := fmt.Sprintf(
		"Hello! I am %s, your intelligent loan assistant. I can help you get a personalized loan offer in minutes. To begin, could you please tell me your full name?",
		o.persona.AssistantName,
	)
	return &model.ResponseBundle{
		Messages:  []model.Message{o.newMessage(model.RoleAssistant, greeting, model.WidgetNone)},
		NextStage: model.StageSales,
		StageStatusUpdates: []model.StageStatusUpdate{
			{Stage: model.StageIntake, Status: model.StatusCompleted},
			{Stage: model.StageSales, Status: model.StatusActive},
		},
	}
}

func (o *Orchestrator) stepSales(ctx context.Context, s *model.Session, userText *string) *model.ResponseBundle {
	if userText == nil {
		// stage re-opened without input; ask for the next missing field
		prompt := o.fallback.NextPrompt(s.Profile)
		return &model.ResponseBundle{
			Messages: []model.Message{o.newMessage(model.RoleAssistant, prompt, model.WidgetNone)},
		}
	}

	result, err := o.extractor.Extract(ctx, s.Profile, *userText)
	if err != nil {
		logx.Warn().
			Str("session_id", s.ID).
			Err(err).
			Msg("Extraction unavailable, switching to fallback collector")
		return o.stepSalesFallback(s, *userText)
	}

	bundle := &model.ResponseBundle{
		Messages:     []model.Message{o.newMessage(model.RoleAssistant, result.Message, model.WidgetNone)},
		FieldUpdates: result.Fields,
	}
	if !result.Complete {
		return bundle
	}

	// The extractor's completeness verdict is trusted as-is.
	if !strings.Contains(strings.ToLower(result.Message), "offer") {
		bundle.Messages = append(bundle.Messages, o.newMessage(model.RoleAssistant,
			"Perfect! I have everything I need. Connecting to our partner network to find the best rates for you...",
			model.WidgetNone))
	}
	bundle.NextStage = model.StageOffer
	bundle.StageStatusUpdates = []model.StageStatusUpdate{
		{Stage: model.StageSales, Status: model.StatusCompleted},
		{Stage: model.StageOffer, Status: model.StatusActive},
	}
	return bundle
}

func (o *Orchestrator) stepSalesFallback(s *model.Session, userText string) *model.ResponseBundle {
	update, prompt, complete := o.fallback.Next(s.Profile, userText)

	bundle := &model.ResponseBundle{
		Messages:     []model.Message{o.newMessage(model.RoleAssistant, prompt, model.WidgetNone)},
		FieldUpdates: update,
	}
	if complete {
		bundle.NextStage = model.StageOffer
		bundle.StageStatusUpdates = []model.StageStatusUpdate{
			{Stage: model.StageSales, Status: model.StatusCompleted},
			{Stage: model.StageOffer, Status: model.StatusActive},
		}
	}
	return bundle
}

// stepOffer always succeeds in producing an announcement and the offer
// batch; a generation failure degrades to a canned sentence.
func (o *Orchestrator) stepOffer(ctx context.Context, s *model.Session) *model.ResponseBundle {
	batch := o.offers.Generate(s.Profile)

	announcement := offerAnnouncementFallback
	if prompt, err := prompts.RenderOfferAnnouncement(ctx, o.persona, s.Profile, len(batch)); err == nil {
		if text, err := o.gen.Generate(ctx, prompt); err == nil && strings.TrimSpace(text) != "" {
			announcement = strings.TrimSpace(text)
		} else if err != nil {
			logx.Warn().
				Str("session_id", s.ID).
				Err(err).
				Msg("Offer announcement generation failed, using canned copy")
		}
	}

	return &model.ResponseBundle{
		Messages:  []model.Message{o.newMessage(model.RoleAssistant, announcement, model.WidgetOfferList)},
		Offers:    batch,
		NextStage: model.StageVerification,
		StageStatusUpdates: []model.StageStatusUpdate{
			{Stage: model.StageOffer, Status: model.StatusCompleted},
		},
	}
}

func (o *Orchestrator) stepVerification() *model.ResponseBundle {
	return &model.ResponseBundle{
		Messages: []model.Message{o.newMessage(model.RoleAssistant,
			"To unlock this offer, we just need to verify your identity. Please upload your PAN and Aadhaar card below for instant KYC.",
			model.WidgetDocumentRequest)},
		StageStatusUpdates: []model.StageStatusUpdate{
			{Stage: model.StageVerification, Status: model.StatusActive},
		},
	}
}

func (o *Orchestrator) newMessage(role model.Role, content string, widget model.Widget) model.Message {
	return model.Message{
		ID:        o.newID(),
		Role:      role,
		Content:   content,
		Timestamp: o.now(),
		Widget:    widget,
	}
}

// logMessages appends to the transcript best-effort; the turn never fails
// on a log error.
func (o *Orchestrator) logMessages(ctx context.Context, sessionID string, msgs []model.Message) {
	if o.log == nil {
		return
	}
	for _, m := range msgs {
		if err := o.log.Append(ctx, sessionID, m); err != nil {
			logx.Error().
				Str("session_id", sessionID).
				Err(err).
				Msg("Error appending message to transcript")
		}
	}
}
