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

	"github.com/joho/godotenv"

	"github.com/DevGolamSever/mind-ease/internal/config"
	"github.com/DevGolamSever/mind-ease/internal/handler"
	"github.com/DevGolamSever/mind-ease/internal/model/resource"
	aiservice "github.com/DevGolamSever/mind-ease/internal/service/ai"
	authservice "github.com/DevGolamSever/mind-ease/internal/service/auth"
	chatservice "github.com/DevGolamSever/mind-ease/internal/service/chat"
	moodservice "github.com/DevGolamSever/mind-ease/internal/service/mood"
	timerservice "github.com/DevGolamSever/mind-ease/internal/service/timer"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	st := store.NewMemoryStore()

	aiSvc, err := aiservice.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize generative service: %v", err)
	}
	if aiSvc.Enabled() {
		log.Println("generative service initialized successfully")
	} else {
		log.Println("generative credential not configured; chat turns will answer with a configuration notice")
	}

	sessions := authservice.NewSessionStore(cfg.Auth.SessionTTL)
	authSvc := authservice.NewService(st, sessions, cfg.Auth)

	chatSvc := chatservice.NewService(st, chatservice.WrapAI(aiSvc))

	var remote moodservice.RemoteSource
	if cfg.Mood.RemoteEnabled() {
		remote = moodservice.NewHTTPRemote(cfg.Mood.SyncURL, cfg.Mood.Timeout)
		log.Printf("remote mood source configured at %s", cfg.Mood.SyncURL)
	}
	moodSvc := moodservice.NewService(st, remote)

	timerSvc := timerservice.NewService()
	resources := resource.NewMemoryStore(resource.Seed())

	router := handler.NewRouter(authSvc, chatSvc, moodSvc, timerSvc, resources)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mind Ease backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
