package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"warungchat/internal/checkout"
	"warungchat/internal/config"
	"warungchat/internal/logger"
	"warungchat/internal/session"
	"warungchat/internal/storefront"
	"warungchat/internal/tui"
)

func main() {
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.LoadClient(*envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// the alt screen owns stderr, so logs only go to a file
	if cfg.Log.File != "" {
		closer, err := logger.Setup("warungchat-cli", cfg.Log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()
	} else {
		logger.Discard()
	}

	// ───────────────────────── APP ─────────────────────────
	client := session.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	app := storefront.New(client,
		storefront.WithCheckoutOptions(checkout.WithPaymentDelay(cfg.PaymentDelay)),
	)
	app.Welcome()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probe := session.NewProbe(client, cfg.StatusInterval, func(ok bool, st *session.Status, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("status check failed")
		} else if st != nil && st.RasaError != "" {
			log.Warn().Str("rasa_error", st.RasaError).Msg("rasa unreachable")
		}
		app.SetConnected(ok)
	})
	go probe.Run(ctx)

	// ───────────────────────── RUN ─────────────────────────
	p := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
