package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hnguyen/assistant-backend/internal/ai"
	"github.com/hnguyen/assistant-backend/internal/credential"
	"github.com/hnguyen/assistant-backend/internal/delivery"
	"github.com/hnguyen/assistant-backend/internal/httpapi"
	"github.com/hnguyen/assistant-backend/internal/memory"
	"github.com/hnguyen/assistant-backend/internal/model"
	"github.com/hnguyen/assistant-backend/internal/notify"
	"github.com/hnguyen/assistant-backend/internal/planner"
	"github.com/hnguyen/assistant-backend/internal/store"
	"github.com/hnguyen/assistant-backend/internal/task"
)

func main() {
	logger := log.Default()

	configPath := os.Getenv("ASSISTANT_CONFIG")
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		logger.Fatalf("loading config: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	var sender delivery.Sender
	if cfg.DeliveryEnabled() {
		sender = delivery.NewSMTPSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.Username,
			credential.GetOrEnv("smtp_password", "SMTP_PASSWORD"),
			cfg.Email.From,
			cfg.Email.Recipient,
		)
		logger.Printf("email delivery enabled host=%s recipient=%s",
			cfg.Email.SMTPHost, cfg.Email.Recipient)
	}

	notifications := notify.NewService(st, sender, logger)
	tasks := task.NewService(st, notifications, logger)
	memories := memory.NewService(st, nil)

	var assistant httpapi.Assistant
	if apiKey := credential.GetOrEnv("anthropic_api_key", "ANTHROPIC_API_KEY"); apiKey != "" {
		assistant = ai.New(apiKey, cfg.AI.Model, cfg.AI.MaxTokens)
	} else {
		logger.Printf("no AI API key configured; assist endpoints disabled")
	}

	p := planner.New(nil, logger, nil)

	server := httpapi.NewServer(tasks, notifications, memories, assistant, p, logger)

	// Root context cancelled on SIGINT/SIGTERM.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s storage=%s", srv.Addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Printf("shutdown signal received")

	// Stop accepting new requests; wait for in-flight with timeout.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown error: %v", err)
	}
}

func openStore(cfg *model.AppConfig) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return store.NewMemStore(), nil
	default:
		return store.NewSQLiteStore(cfg.Storage.Path)
	}
}
