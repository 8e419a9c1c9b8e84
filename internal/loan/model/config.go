package model

import "time"

// ================ Config ================

// GeneratorConfig tunes the external text-generation dependency. The timeout
// bounds a single generation attempt; a timed-out call is treated the same
// as a failed one and routes the turn to the fallback path.
type GeneratorConfig struct {
	Model       string        `envconfig:"GENERATOR_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int           `envconfig:"GENERATOR_MAX_TOKENS" default:"1024"`
	Temperature float32       `envconfig:"GENERATOR_TEMPERATURE" default:"0.3"`
	Timeout     time.Duration `envconfig:"GENERATOR_TIMEOUT" default:"5s"`
}

// PersonaConfig names the assistant in prompts and canned copy.
type PersonaConfig struct {
	AssistantName string `envconfig:"PERSONA_ASSISTANT_NAME" default:"FinSage"`
	NetworkName   string `envconfig:"PERSONA_NETWORK_NAME" default:"FinSage Agent Network"`
}

// SessionConfig governs transcript retention in the message log.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"15m"`
}
