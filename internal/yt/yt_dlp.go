package yt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// YtDlp exécute le binaire yt-dlp (nom ou chemin résolu).
type YtDlp struct {
	Name         string
	Path         string // chemin vers l'exe, prioritaire sur Name
	ShowWarnings bool
	logger       *slog.Logger
}

// NewYtDlp construit une instance. path doit être le chemin résolu vers l'exe.
func NewYtDlp(name, path string, showWarnings bool, logger *slog.Logger) *YtDlp {
	if logger == nil {
		logger = slog.Default()
	}
	return &YtDlp{
		Name:         name,
		Path:         path,
		ShowWarnings: showWarnings,
		logger:       logger,
	}
}

func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// buildArgs : métadonnées seulement, sans téléchargement ni config utilisateur.
// --no-config en tête pour que des configs locales ne modifient pas la sortie.
func (y *YtDlp) buildArgs(url string) []string {
	args := []string{"--no-config", "-j", "--skip-download", "--no-playlist", "--no-progress", "--no-update"}
	if !y.ShowWarnings {
		args = append(args, "--no-warnings")
	}
	return append(args, url)
}

// CheckBinary vérifie que le binaire configuré existe et n'est pas un dossier.
// Sans chemin, on cherche le nom dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}
	if y.Path == "" {
		if _, err := exec.LookPath(y.Name); err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s): %w", y.Name, err)
		}
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %w", y.Path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire : %s", y.Path)
	}
	return nil
}

// GetVersion exécute `yt-dlp --version`.
// CombinedOutput pour avoir stderr dans le message en cas d'échec.
func (y *YtDlp) GetVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, y.exe(), "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution yt-dlp --version : %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et sépare la ligne JSON des avertissements.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		y.logger.Debug("yt-dlp metadata extracted", "url", url, "elapsed", time.Since(start))
	}()

	out, err := exec.CommandContext(ctx, y.exe(), y.buildArgs(url)...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w, output: %s", err, string(out))
	}
	return splitOutput(out)
}

// splitOutput garde la dernière ligne JSON, le reste part dans Warnings.
func splitOutput(out []byte) (*ExtractedRaw, error) {
	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			jsonLine = line
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", string(out))
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}
