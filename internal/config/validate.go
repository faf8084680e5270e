package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate vérifie la cohérence des valeurs après normalisation.
// Toutes les erreurs sont retournées d'un coup (errors.Join).
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	var errs []error

	f, err := model.ParseFormat(c.Output.Format)
	if err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	} else if !f.IsOutput() {
		errs = append(errs, fmt.Errorf("output.format: %q n'est pas un format de sortie (json ou txt)", f))
	}
	if _, err := model.ParseGroupMode(c.Output.GroupMode); err != nil {
		errs = append(errs, fmt.Errorf("output.group_mode: %w", err))
	}

	if c.Segmentation.GapThresholdSeconds <= 0 {
		errs = append(errs, fmt.Errorf("segmentation.gap_threshold_seconds doit être > 0 (%v)", c.Segmentation.GapThresholdSeconds))
	}
	if c.Segmentation.MaxChars <= 0 {
		errs = append(errs, fmt.Errorf("segmentation.max_chars doit être > 0 (%d)", c.Segmentation.MaxChars))
	}
	if c.Segmentation.MaxWords <= 0 {
		errs = append(errs, fmt.Errorf("segmentation.max_words doit être > 0 (%d)", c.Segmentation.MaxWords))
	}

	if c.Paragraph.MinSentences <= 0 || c.Paragraph.MaxSentences <= 0 {
		errs = append(errs, fmt.Errorf("paragraph: min_sentences et max_sentences doivent être > 0"))
	} else if c.Paragraph.MinSentences > c.Paragraph.MaxSentences {
		errs = append(errs, fmt.Errorf("paragraph.min_sentences (%d) > max_sentences (%d)", c.Paragraph.MinSentences, c.Paragraph.MaxSentences))
	}

	if c.Captions.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("captions.max_bytes négatif (%d)", c.Captions.MaxBytes))
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, fmt.Errorf("cache.path vide alors que le cache est activé"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, fmt.Errorf("server.addr vide"))
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level inconnu: %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// ValidateYtDlpPresence vérifie de manière statique que si un ResolvedPath est défini,
// le fichier existe et que le répertoire parent est accessible.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) ValidateYtDlpPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	c.ResolveYtDlpPath()

	p := strings.TrimSpace(c.YtDlp.ResolvedPath)
	if p == "" {
		// pas de chemin configuré : recherche dans le PATH au lancement
		return nil, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin yt-dlp n'existe pas : %s", parent))
			return warnings, nil
		}
		return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin yt-dlp n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("yt-dlp introuvable à l'emplacement configuré : %s", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour yt-dlp est un répertoire : %s", p)
	}
	return warnings, nil
}
