package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"warungchat/internal/chat"
	"warungchat/internal/config"
	"warungchat/internal/conversation"
	"warungchat/internal/logger"
	"warungchat/internal/nlu"
	"warungchat/internal/router"
)

func main() {
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.LoadServer(*envPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	closer, err := logger.Setup("warungchat-api", cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	defer closer.Close()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// ───────────────────────── NLU + LOG ─────────────────────────
	rasa := nlu.NewRasaClient(cfg.RasaURL, cfg.RasaTimeout, cfg.RasaStatusTimeout)
	conversations := conversation.NewInMemoryRepository(cfg.ConversationLimit)

	// ───────────────────────── HANDLERS ─────────────────────────
	chatService := chat.NewService(rasa, conversations)
	chatHandler := chat.NewHandler(chatService)

	r := router.NewRouter(chatHandler, chatService, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Str("rasa_url", cfg.RasaURL).Msg("🚀 web server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
