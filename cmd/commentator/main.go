package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	commentator "github.com/thecommentator/commentator"
)

func main() {
	cfg := commentator.SiteConfig{
		Name:        envOr("SITE_NAME", ""),
		URL:         envOr("SITE_URL", ""),
		Description: envOr("SITE_DESCRIPTION", "Independent commentary on politics, markets, and power."),
		Author:      envOr("SITE_AUTHOR", ""),

		Addr: envOr("ADDR", ""),

		MongoURI:    envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: envOr("MONGO_DB", "commentator"),

		GateUser: os.Getenv("GATE_USER"),
		GatePass: os.Getenv("GATE_PASS"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", ""),

		ToolRequestsPerMinute: envInt("TOOL_REQUESTS_PER_MINUTE", 0),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := commentator.NewStore(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("content store: %v", err)
	}

	app := commentator.New(cfg, store)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
		if err := store.Close(shutdownCtx); err != nil {
			log.Errorf("store close: %v", err)
		}
	}()

	if err := app.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return n
}
