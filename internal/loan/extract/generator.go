package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/finsage-core-poc/server/internal/core/error"
	"github.com/finsage-core-poc/server/internal/loan/model"
	logx "github.com/finsage-core-poc/server/pkg/logger"
)

// Generator is the external text-generation capability injected into the
// engine. A single attempt per call; failures and timeouts are equivalent.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements Generator on top of the Eino Gemini chat model.
type GeminiGenerator struct {
	model     *gemini.ChatModel
	modelName string
	timeout   time.Duration
}

// GeminiConfig holds what is needed to construct the Gemini-backed generator.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   model.GeneratorConfig
}

// NewGeminiGenerator builds the genai client and chat model.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating generation model")
		return nil, fmt.Errorf("error creating generation model: %w", err)
	}

	return &GeminiGenerator{
		model:     chatModel,
		modelName: cfg.Model.Model,
		timeout:   cfg.Model.Timeout,
	}, nil
}

// Generate runs one bounded generation attempt and returns the raw text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.WrapGeneration(err)
	}
	if out == nil {
		return "", errx.WrapGeneration(fmt.Errorf("empty response"))
	}

	g.logUsage(out)
	return out.Content, nil
}

// logUsage records token usage and USD cost for the call when the provider
// reports them.
func (g *GeminiGenerator) logUsage(out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(g.modelName))
	logx.Debug().
		Str("model", g.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

var _ Generator = (*GeminiGenerator)(nil)
