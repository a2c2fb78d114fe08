package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	setupLogger(cfg)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Services
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(connManager, game.Options{
		BotThinkDelay: cfg.BotThinkDelay,
		TurnTick:      cfg.TurnTick,
	})
	gameService := game.NewService(sessionManager, 0)

	// 2. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTimeout).Start(workerCtx)

	// 3. Handlers
	sessionHandler := transportHttp.NewSessionHandler(sessionManager, cfg.JWTSecret, cfg.SessionTokenTTL,
		bot.ParseDifficulty(cfg.DefaultDifficulty))
	botHandler := transportHttp.NewBotHandler(gameService)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret, cfg.AllowedOrigins)

	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		Sessions:       sessionHandler,
		Bot:            botHandler,
		WebSocket:      wsHandler.HandleWebSocket,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Server is shutting down...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Int("sessions", sessionManager.Count()).Msg("Server exited gracefully")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
