package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/shadowscribe/internal/app"
	"github.com/patrickprogramme/shadowscribe/internal/config"
	"github.com/patrickprogramme/shadowscribe/internal/logging"
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/ui"
)

func main() {
	flags := parseFlags()

	// config par défaut à côté de l'exécutable
	binDir := "."
	if exePath, err := os.Executable(); err == nil {
		binDir = filepath.Dir(exePath)
	} else {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	}
	if flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, config.DefaultConfigFile)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	logger := logging.WithComponent(logging.NewLogger(cfg.LogLevel), "shadowscribe")

	if warnings, err := cfg.ValidateYtDlpPresence(); err != nil {
		logger.Warn("yt-dlp path", "error", err)
	} else {
		for _, w := range warnings {
			logger.Warn("yt-dlp path", "message", w)
		}
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// nil explicite quand le cache est coupé (pas de *store.Store nil dans l'interface)
	var cache app.Cache
	// ouvert même avec -no-cache : la transcription fraîche remplace l'ancienne
	if cfg.Cache.Enabled {
		dbPath := cfg.Cache.Path
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(filepath.Dir(cfg.Path()), dbPath)
		}
		st, err := store.Open(dbPath, logging.WithComponent(logger, "store"))
		if err != nil {
			logger.Warn("cache disabled", "path", dbPath, "error", err)
		} else {
			defer st.Close()
			cache = st
		}
	}

	a := app.New(cfg, ui.NewTerminal(), flags, logger, cache)

	if flags.Serve {
		if err := a.Serve(ctx); err != nil {
			logger.Error("serve failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if _, err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "erreur: %v\n", err)
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "", "chemin du fichier de configuration (défaut : shadowscribe.yaml à côté de l'exécutable)")
	flag.StringVar(&f.URL, "url", "", "URL de la vidéo YouTube (sinon presse-papier, puis saisie)")
	flag.StringVar(&f.CaptionsPath, "captions", "", "fichier de sous-titres local (.json3 ou .json) au lieu de yt-dlp")
	flag.StringVar(&f.Mode, "mode", "", "regroupement : sentence | paragraph | total")
	flag.StringVar(&f.Format, "format", "", "format de sortie : json | txt")
	flag.StringVar(&f.OutDir, "out", "", "dossier de sortie")
	flag.StringVar(&f.LogLevel, "log-level", "", "niveau de log : debug | info | warn | error")
	flag.StringVar(&f.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp")
	flag.BoolVar(&f.Serve, "serve", false, "démarre l'API HTTP au lieu du traitement d'une vidéo")
	flag.BoolVar(&f.Copy, "copy", false, "copie le texte produit dans le presse-papier")
	flag.BoolVar(&f.NoCache, "no-cache", false, "ignore le cache des transcriptions")
	flag.Parse()
	return f
}
