package model

import "time"

// Role is the author of a chat message.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Widget tags a message with an interactive element the presentation layer
// should render. Opaque to the engine beyond its kind.
type Widget string

const (
	WidgetNone                     Widget = ""
	WidgetDocumentRequest          Widget = "document-request"
	WidgetVerificationConfirmation Widget = "verification-confirmation"
	WidgetOfferList                Widget = "offer-list"
	WidgetSanctionAction           Widget = "sanction-action"
)

// Message is one immutable entry of the conversation transcript.
// Messages are append-only; they are never mutated or removed after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Widget    Widget    `json:"widget,omitempty"`
}
