package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// legacyV1 : clés à plat de la première version du fichier.
type legacyV1 struct {
	OutputDir        string `yaml:"output_dir"`
	TranscriptFormat string `yaml:"transcript_format"`
	SaveInSubdir     *bool  `yaml:"save_in_subdir"`
	PreferManualSubs *bool  `yaml:"prefer_manual_subs"`
}

// orchestrateConfigUpgrade : sauvegarde, migration, écriture
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return fmt.Errorf("config nil lors de la migration")
	}
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	raw, err := os.ReadFile(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("lecture du fichier pour migration impossible : %w", err)
	}

	backupPath, err := backupConfig(cfg.configFilePath, raw)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde du fichier de configuration avant migration : %w", err)
	}

	if err := migrateConfig(cfg, fromVersion, raw); err != nil {
		return fmt.Errorf("échec lors de la migration de la configuration (depuis %d) : %w", fromVersion, err)
	}
	cfg.normalizeConfig()
	cfg.ConfigVersion = CurrentConfigVersion

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration migrée : %w", err)
	}
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		// on remet l'original
		_ = fsutil.WriteFileAtomic(cfg.configFilePath, raw, 0o644)
		return fmt.Errorf("échec d'écriture du fichier de configuration migré %s : %w", cfg.configFilePath, err)
	}

	slog.Info("configuration mise à jour",
		"from", fromVersion, "to", CurrentConfigVersion, "backup", backupPath)
	return nil
}

// backupConfig écrit data à côté du fichier et retourne le chemin de la sauvegarde
func backupConfig(path string, data []byte) (string, error) {
	backup := path + ".bak." + time.Now().Format("20060102T150405")
	if err := fsutil.WriteFileAtomic(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("écriture de la sauvegarde %s impossible : %w", backup, err)
	}
	return backup, nil
}

// migrateConfig applique les étapes successives depuis la version from.
// raw est le contenu original du fichier (pour relire les anciennes clés).
func migrateConfig(cfg *Config, from int, raw []byte) error {
	if cfg == nil {
		return fmt.Errorf("pas de config fournie")
	}
	for v := from; v < CurrentConfigVersion; v++ {
		switch v {
		case 0, 1:
			// 1 -> 2 : clés à plat déplacées dans la section output
			var old legacyV1
			if err := yaml.Unmarshal(raw, &old); err != nil {
				return fmt.Errorf("lecture des anciennes clés : %w", err)
			}
			if old.OutputDir != "" {
				cfg.Output.Dir = old.OutputDir
			}
			switch old.TranscriptFormat {
			case "json", "txt":
				cfg.Output.Format = old.TranscriptFormat
			}
			if old.SaveInSubdir != nil {
				cfg.Output.SaveInSubdir = *old.SaveInSubdir
			}
			if old.PreferManualSubs != nil {
				cfg.Captions.PreferManualSubs = *old.PreferManualSubs
			}
			// v == 0 et v == 1 font la même étape : on saute directement à 2
			v = 1
		}
	}
	return nil
}
