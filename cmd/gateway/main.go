package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/claritynotes/clarity-client/pkg/validator"

	"github.com/claritynotes/clarity-client/internal/adapter/handler"
	"github.com/claritynotes/clarity-client/internal/infrastructure/backend"
	"github.com/claritynotes/clarity-client/internal/infrastructure/ws"
	"github.com/claritynotes/clarity-client/internal/usecase/chat"
	"github.com/claritynotes/clarity-client/internal/usecase/recording"
	"github.com/claritynotes/clarity-client/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	e.Use(middleware.RequestID())

	// CORS middleware for the local renderer
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("Initializing backend client...")
	apiClient := backend.NewClient(&cfg.Backend)

	// Shared result store: populated by uploads, recording sessions and the
	// auto-fetch timer alike.
	store := handler.NewResultStore()

	// Recording session controller
	recordingCtrl := recording.NewController(apiClient, store, cfg.Recording.AutoFetchDelay, logger)

	// Chat relay over the backend socket
	log.Println("Starting chat relay...")
	relay := chat.NewRelay(
		ws.NewDialer(cfg.Backend.SocketURL),
		apiClient,
		chat.Options{
			ReconnectAttempts: cfg.Chat.ReconnectAttempts,
			FilterByMeeting:   cfg.Chat.FilterByMeeting,
		},
		logger,
	)
	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	relay.Start(relayCtx)
	defer relay.Close()

	// Initialize handlers
	meetingController := handler.NewMeetingController(apiClient, store, logger)
	sessionController := handler.NewSessionController(recordingCtrl, logger)
	chatController := handler.NewChatController(relay, logger)

	// Setup router with handlers
	router := handler.NewRouter(cfg, meetingController, sessionController, chatController)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("Starting gateway on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Gateway stopped gracefully")
}
