package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plumecms/plume-be/internal/api"
	"github.com/plumecms/plume-be/internal/auth"
	"github.com/plumecms/plume-be/internal/config"
	"github.com/plumecms/plume-be/internal/database"
	"github.com/plumecms/plume-be/internal/logger"
	"github.com/plumecms/plume-be/internal/monitoring"
	"github.com/plumecms/plume-be/internal/services"
	"github.com/plumecms/plume-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv)
	auth.SetSecret(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed built-in roles")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)
	userService := services.NewUserService(db, postService, commentService)
	eventService := services.NewEventService(db, hub)

	// Set up and run the background event janitor
	janitor, err := monitoring.NewJanitor(eventService, cfg.EventPruneSchedule, cfg.EventRetentionDays)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.EventPruneSchedule).Msg("Invalid event prune schedule")
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(hub, userService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
