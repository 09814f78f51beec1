// Package main provides the entry point for the devotional API.
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

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"devotional-api/internal/config"
	"devotional-api/internal/handler"
	"devotional-api/internal/logger"
	"devotional-api/internal/notifier"
	"devotional-api/internal/store"
	"devotional-api/internal/streak"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	log.Info("Starting Devotional API")

	st, err := store.Open(cfg.DBPath, log)
	if err != nil {
		log.Error("failed to open store", zap.Error(err))
		return err
	}
	defer func() { _ = st.Close() }()

	relay := notifier.New(cfg, log)
	engine := streak.NewEngine(nil)
	validate := validator.New()
	_ = validate.RegisterValidation("passageref", handler.PassageValidator)

	h := handler.New(log, st, relay, engine, validate)
	r := chi.NewRouter()
	r.Get("/healthz", h.Healthz)
	r.Post("/devotionals/{planID}/days/{day}/complete", h.CompleteDay)
	r.Post("/journal", h.CreateJournal)
	r.Get("/journal", h.ListJournal)
	r.Post("/bookmarks", h.CreateBookmark)
	r.Get("/bookmarks", h.ListBookmarks)
	r.Delete("/bookmarks/{id}", h.DeleteBookmark)
	r.Get("/streak", h.GetStreak)
	r.Put("/profile/name", h.UpdateName)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go relay.Start()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	relay.Stop()
	return nil
}

func main() {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("warning: no .env file loaded (this is fine in production): %v", err)
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
