// Package main provides the entry point for the Affinity Map application.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"affinity-map/internal/app"
	"affinity-map/internal/config"
	"affinity-map/internal/store"
	"affinity-map/internal/version"
	"affinity-map/internal/viewport"
	"affinity-map/ui/mainwindow"
)

const appID = "org.affinitymap.board"

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.ConfigEnv+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	viewport.SetLogger(logger)
	slog.Info("starting", "version", version.String(), "store", cfg.Store, "path", cfg.StorePath)

	st, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}

	settings, err := cfg.ViewportSettings()
	if err != nil {
		slog.Error("viewport settings", "error", err)
		os.Exit(1)
	}

	appState := app.NewState(st, settings, cfg.SaveDelay)
	if err := appState.Load(context.Background()); err != nil {
		slog.Warn("restore failed, starting empty", "error", err)
	}
	defer func() {
		if err := appState.Close(); err != nil {
			slog.Warn("close store", "error", err)
		}
	}()

	if len(flag.Args()) > 0 {
		path := flag.Arg(0)
		if err := appState.ImportFile(path); err != nil {
			slog.Warn("import failed", "path", path, "error", err)
		}
	}

	if cfg.WatchFile != "" {
		watcher := app.NewFileWatcher(cfg.WatchFile, cfg.SaveDelay)
		watcher.OnChange(func(path string) {
			if err := appState.ReloadFile(path); err != nil {
				slog.Warn("reload roster file", "path", path, "error", err)
			}
		})
		if err := watcher.Start(); err != nil {
			slog.Warn("watch roster file", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.BoardTheme{})

	win := mainwindow.New(fyneApp, appState)
	win.ShowAndRun()
}
