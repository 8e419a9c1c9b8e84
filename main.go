package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/finsage-core-poc/server/internal/core"
	"github.com/finsage-core-poc/server/internal/loan/extract"
	"github.com/finsage-core-poc/server/internal/loan/model"
	"github.com/finsage-core-poc/server/internal/loan/orchestrator"
	"github.com/finsage-core-poc/server/internal/loan/repo"
	logx "github.com/finsage-core-poc/server/pkg/logger"
	pkgredis "github.com/finsage-core-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the demo conversation,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Engine configs
	Generator model.GeneratorConfig
	Persona   model.PersonaConfig
	Session   model.SessionConfig
}

func main() {
	fmt.Println("FinSage loan-origination agent demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(os.Getenv("APP_ENV"))})

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	gen, err := extract.NewGeminiGenerator(ctx, extract.GeminiConfig{
		APIKey:  envCfg.APIKey,
		BaseURL: envCfg.BaseURL,
		Model:   envCfg.Generator,
	})
	if err != nil {
		log.Fatalf("Failed to build Gemini generator: %v", err)
	}

	engine, err := orchestrator.New(orchestrator.Config{
		Generator: gen,
		Log:       repo.NewRedisMessageLog(rdb, envCfg.Session.TTL),
		Persona:   envCfg.Persona,
	})
	if err != nil {
		log.Fatalf("Failed to build orchestrator: %v", err)
	}

	sess := model.NewSession("demo-session-1")

	opening, err := engine.SessionStart(ctx, sess)
	if err != nil {
		log.Fatalf("Session start failed: %v", err)
	}
	printBundle(sess, opening)

	userTurns := []string{
		"Hi, I'm Asha Verma",
		"I need around 3 lakh rupees, say 300000",
		"It's for my sister's wedding",
		"My monthly income is 60000",
		"I live in Pune",
		"I'm salaried",
	}

	for _, text := range userTurns {
		fmt.Printf("\nuser: %s\n", text)
		bundle, err := engine.UserText(ctx, sess, text)
		if err != nil {
			log.Fatalf("User turn failed: %v", err)
		}
		printBundle(sess, bundle)
		if len(sess.Offers) > 0 {
			break
		}
	}

	if len(sess.Offers) == 0 {
		log.Fatal("Conversation ended without offers")
	}

	// Pick the first presented offer, then complete KYC.
	selection, err := engine.OfferSelected(ctx, sess, sess.Offers[0].ID)
	if err != nil {
		log.Fatalf("Offer selection failed: %v", err)
	}
	printBundle(sess, selection)

	sanction, err := engine.DocumentsUploaded(ctx, sess)
	if err != nil {
		log.Fatalf("Document upload failed: %v", err)
	}
	printBundle(sess, sanction)

	fmt.Printf("\nFinal stage: %s, selected offer: %s\n", sess.Stage, sess.SelectedOfferID)
}

func printBundle(sess *model.Session, b *model.ResponseBundle) {
	for _, m := range b.Messages {
		if m.Widget != model.WidgetNone {
			fmt.Printf("%s [%s]: %s\n", m.Role, m.Widget, m.Content)
		} else {
			fmt.Printf("%s: %s\n", m.Role, m.Content)
		}
	}
	for _, u := range b.StageStatusUpdates {
		fmt.Printf("  · %s → %s\n", u.Stage, u.Status)
	}
	for _, o := range b.Offers {
		fmt.Printf("  · offer %s: %s ₹%d @ %.1f%% / %d months\n", o.ID, o.Provider, o.Amount, o.InterestRate, o.TenureMonths)
	}
	fmt.Printf("  · stage now %s\n", sess.Stage)
}
