package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/api"
	"github.com/patrickprogramme/shadowscribe/internal/captions"
	"github.com/patrickprogramme/shadowscribe/internal/clipboard"
	"github.com/patrickprogramme/shadowscribe/internal/config"
	"github.com/patrickprogramme/shadowscribe/internal/fsutil"
	"github.com/patrickprogramme/shadowscribe/internal/logging"
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/internal/ui"
	"github.com/patrickprogramme/shadowscribe/internal/yt"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

const (
	Version               = "0.1.0"
	defaultExtractTimeout = 2 * time.Minute
	filePerm              = 0o644
)

// CLIFlags contient les information venant des flags de l'app.
// Les valeurs vides laissent la config décider.
type CLIFlags struct {
	ConfigPath   string
	URL          string
	CaptionsPath string
	Mode         string
	Format       string
	OutDir       string
	LogLevel     string
	YtDlpPath    string
	Serve        bool
	Copy         bool
	NoCache      bool
}

// Cache : transcriptions déjà découpées, par ID de vidéo (*store.Store).
type Cache interface {
	SaveTranscript(ctx context.Context, v store.Video, sentences []model.Sentence) error
	api.TranscriptStore
}

// DownloadFunc télécharge et décode une piste (captions.Download).
type DownloadFunc func(ctx context.Context, track model.SubtitleTrack, timeout time.Duration, maxBytes int64) ([]model.CaptionFragment, error)

// App orchestre les différentes dépendances (UI, yt-dlp, cache, FS...)
type App struct {
	cfg    *config.Config
	ui     ui.Interface
	flags  *CLIFlags
	logger *slog.Logger
	cache  Cache // nil : pas de cache

	ytClient yt.Interface // initialisé à la demande dans loadCaptions
	download DownloadFunc
	copyText func(string) error
}

// New construit l'application avec les dépendances par défaut.
// cache peut être nil. Les tests remplacent ytClient/download/copyText.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, logger *slog.Logger, cache Cache) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		logger:   logger,
		cache:    cache,
		download: captions.Download,
		copyText: clipboard.WriteAll,
	}
}

// Result : ce que Run a produit.
type Result struct {
	Video      store.Video
	FromCache  bool
	Sentences  int
	Units      []model.GroupedUnit
	OutputPath string
}

// Run exécute le flux principal : URL -> phrases -> unités -> fichier.
func (a *App) Run(ctx context.Context) (*Result, error) {
	if err := a.applyFlags(); err != nil {
		return nil, err
	}
	mode := a.cfg.GroupMode()
	format := a.cfg.OutputFormat()

	url, videoID, err := a.resolveVideo(ctx)
	if err != nil {
		return nil, err
	}
	log := logging.WithVideoID(a.logger, videoID)

	res := &Result{Video: store.Video{ID: videoID}}
	var sentences []model.Sentence

	if a.useCache() {
		v, cached, err := a.cache.Transcript(ctx, videoID)
		switch {
		case err == nil:
			log.Info("transcript loaded from cache", "sentences", len(cached))
			res.Video, res.FromCache, sentences = v, true, cached
		case isNotFound(err):
			log.Debug("cache miss")
		default:
			log.Warn("cache read failed", "error", err)
		}
	}

	if !res.FromCache {
		frags, video, err := a.loadCaptions(ctx, url, videoID)
		if err != nil {
			return nil, err
		}
		res.Video = video
		sentences = BuildSentences(frags, a.segmentOptions())
		log.Info("captions segmented", "fragments", len(frags), "sentences", len(sentences))

		if a.cache != nil {
			if err := a.cache.SaveTranscript(ctx, video, sentences); err != nil {
				log.Warn("cache write failed", "error", err)
			}
		}
	}
	res.Sentences = len(sentences)
	res.Units = transcript.Regroup(sentences, mode, a.regroupOptions())

	subdir := ""
	if a.cfg.Output.SaveInSubdir {
		subdir = fsutil.DirName(res.Video.Title, videoID)
	}
	path := OutputPath(a.cfg.Output.Dir, subdir, videoID, mode, format)
	if err := SaveUnits(res.Units, format, path); err != nil {
		return nil, err
	}
	res.OutputPath = path
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d unités (%s) écrites dans %s", len(res.Units), mode, path))

	if a.flags.Copy || a.cfg.Output.CopyToClipboard {
		if err := a.copyText(transcript.Collapsed(res.Units)); err != nil {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: copie dans le presse-papier impossible: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "Texte copié dans le presse-papier.")
		}
	}
	return res, nil
}

// applyFlags : les flags priment sur la config.
func (a *App) applyFlags() error {
	f := a.flags
	if f.Mode != "" {
		a.cfg.Output.GroupMode = strings.ToLower(strings.TrimSpace(f.Mode))
	}
	if f.Format != "" {
		a.cfg.Output.Format = strings.ToLower(strings.TrimSpace(f.Format))
	}
	if f.OutDir != "" {
		a.cfg.Output.Dir = filepath.Clean(f.OutDir)
	}
	if f.YtDlpPath != "" {
		a.cfg.YtDlp.Path = f.YtDlpPath
		a.cfg.ResolveYtDlpPath()
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("options invalides: %w", err)
	}
	return nil
}

// resolveVideo : priorité flag > (fichier de captions) > clipboard > prompt.
func (a *App) resolveVideo(ctx context.Context) (string, string, error) {
	if a.flags.URL != "" {
		id, ok := yt.ExtractVideoID(a.flags.URL)
		if !ok {
			return "", "", fmt.Errorf("%q: %w", a.flags.URL, yt.ErrInvalidURL)
		}
		return a.flags.URL, id, nil
	}
	// fichier local sans URL : l'ID est le nom du fichier
	if a.flags.CaptionsPath != "" {
		base := filepath.Base(a.flags.CaptionsPath)
		id := strings.TrimSuffix(base, filepath.Ext(base))
		return "", id, nil
	}
	url, id, err := a.ui.GetVideoURL(ctx)
	if err != nil {
		return "", "", fmt.Errorf("get url: %w", err)
	}
	return url, id, nil
}

func (a *App) useCache() bool {
	return a.cache != nil && !a.flags.NoCache && a.flags.CaptionsPath == ""
}

func (a *App) segmentOptions() transcript.Options {
	opts := a.cfg.SegmentOptions()
	opts.Observer = logging.NewSegmentObserver(a.logger)
	return opts
}

func (a *App) regroupOptions() transcript.RegroupOptions {
	opts := a.cfg.RegroupOptions()
	opts.Observer = logging.NewSegmentObserver(a.logger)
	return opts
}
