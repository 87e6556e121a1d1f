package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benrueckert/koda-flashcard-app/internal/api"
	"github.com/benrueckert/koda-flashcard-app/internal/config"
	"github.com/benrueckert/koda-flashcard-app/internal/db"
	"github.com/benrueckert/koda-flashcard-app/internal/jobs"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/repository/sqlite"
	"github.com/benrueckert/koda-flashcard-app/internal/services"
	"github.com/benrueckert/koda-flashcard-app/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Koda Flashcards Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)
	log.Debug("sync_max_retries=%d", cfg.SyncMaxRetries)
	log.Debug("due_limit=%d", cfg.DueLimit)
	log.Debug("session_max_idle_min=%d", cfg.SessionMaxIdleMin)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	historyRepo := sqlite.NewReviewHistoryRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	syncQueue := jobs.NewWorkerQueue(syncPool, cardRepo, historyRepo, cfg.SyncMaxRetries, time.Second)

	deckService := services.NewDeckService(deckRepo, statsRepo, nil)
	cardService := services.NewCardService(cardRepo, deckRepo, historyRepo, nil)
	studyService := services.NewStudyService(cardRepo, sessionRepo, historyRepo, syncQueue, nil)

	srv := &api.Server{
		DeckService:  deckService,
		CardService:  cardService,
		StudyService: studyService,
		DueLimit:     cfg.DueLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)

	// Abandoned sessions are reaped on a fixed cadence so the in-memory
	// registry cannot grow without bound.
	maxIdle := time.Duration(cfg.SessionMaxIdleMin) * time.Minute
	go func() {
		ticker := time.NewTicker(maxIdle / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := studyService.ExpireIdleSessions(ctx, maxIdle); n > 0 {
					log.Info("expired %d idle study sessions", n)
				}
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping sync pool")
	cancel()
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Koda Flashcards Server Stopped")
	log.Info("===========================================")
}
