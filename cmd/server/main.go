package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/channel"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/config"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/core"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/db"
	httpserver "github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/http"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/llm"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/triage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, cfg)
	defer store.Close()

	client := buildLLMClient(cfg)
	client = llm.WithRetry(client, cfg.LLMTimeout, 1)

	composer := core.NewComposer(client)
	classifier := triage.NewClassifier()

	pusher := channel.NewTelegramPusher(cfg.TelegramAPIBase, cfg.TelegramToken)
	if !pusher.Enabled() {
		log.Println("warning: TELEGRAM_TOKEN not set, telegram push disabled")
	}

	srv := httpserver.NewServer(classifier, composer, store, pusher)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}
}

// openStore picks the history backend: Postgres when DATABASE_URL is set,
// otherwise a local SQLite file.  Any failure degrades to the no-op store so
// that a broken database never prevents the bot from answering.
func openStore(ctx context.Context, cfg config.Config) db.HistoryStore {
	if cfg.DatabaseURL != "" {
		pg, err := db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Println("warning: postgres unavailable, history disabled:", err)
			return db.NoopStore{}
		}
		return pg
	}
	lite, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Println("warning: sqlite unavailable, history disabled:", err)
		return db.NoopStore{}
	}
	return lite
}

// buildLLMClient selects the model backend.  A missing API key yields the
// disabled client: the process keeps serving and consultations answer with
// the fallback message.
func buildLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Println("warning: GEMINI_API_KEY not set, model calls disabled")
			return llm.Disabled{}
		}
		return llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEndpoint)
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Println("warning: OPENAI_API_KEY not set, model calls disabled")
			return llm.Disabled{}
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
}
