// Package main is the entry point for the interactive level editor.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeonwright/internal/config"
	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/session"
	"github.com/samdwyer/dungeonwright/internal/telemetry"
	"github.com/samdwyer/dungeonwright/internal/tools"
	"github.com/samdwyer/dungeonwright/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Logs would scribble over the tcell screen; keep them out of the way
	// unless a log file is named.
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	ctx := context.Background()

	// Honeycomb credentials in .env switch tracing on as well
	enabled := telemetry.ConfigureHoneycomb() || cfg.Telemetry
	shutdown, err := telemetry.Setup(ctx, enabled)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Editor will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	tb, err := tools.NewDefault()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	sess := session.New(cfg.Limits, tb, cfg.SavePath)
	if err := sess.Load(cfg.SavePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", cfg.SavePath, err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	renderer, err := ui.NewRenderer(screen, gamedata.MustLoadPalette(), ui.NewLocale(cfg.LocaleDir, cfg.Lang))
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	editor := session.NewEditor(sess, screen, renderer)
	err = editor.Run(ctx)
	editor.Close()
	if err != nil {
		log.Fatalf("Editor error: %v", err)
	}
}
