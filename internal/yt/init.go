package yt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp construit le client yt-dlp depuis la config, vérifie le binaire
// et récupère la version (avec timeout).
func InitYtDlp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Interface, string, error) {
	dl := NewYtDlp(cfg.YtDlp.Name, cfg.YtDlp.ResolvedPath, cfg.YtDlp.ShowWarnings, logger)

	if err := dl.CheckBinary(); err != nil {
		return nil, "", fmt.Errorf("yt-dlp introuvable : %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version yt-dlp : %w", err)
	}
	dl.logger.Info("yt-dlp ready", "path", dl.exe(), "version", version)

	return dl, version, nil
}
