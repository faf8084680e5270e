package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/assets"
	"github.com/patrickprogramme/shadowscribe/internal/fsutil"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
	"gopkg.in/yaml.v3"
)

const (
	CurrentConfigVersion = 2
	DefaultConfigFile    = "shadowscribe.yaml"
)

// Config : paramètres de shadowscribe, lus depuis shadowscribe.yaml.
type Config struct {
	Output struct {
		Dir             string `yaml:"dir"`
		Format          string `yaml:"format"`     // json | txt
		GroupMode       string `yaml:"group_mode"` // sentence | paragraph | total
		SaveInSubdir    bool   `yaml:"save_in_subdir"`
		CopyToClipboard bool   `yaml:"copy_to_clipboard"`
	} `yaml:"output"`

	// Découpage en phrases
	Segmentation struct {
		GapThresholdSeconds float64 `yaml:"gap_threshold_seconds"`
		MaxChars            int     `yaml:"max_chars"`
		MaxWords            int     `yaml:"max_words"`
	} `yaml:"segmentation"`

	// Regroupement en paragraphes
	Paragraph struct {
		MinSentences int `yaml:"min_sentences"`
		MaxSentences int `yaml:"max_sentences"`
	} `yaml:"paragraph"`

	// Sous-titres
	Captions struct {
		PreferredLang       string `yaml:"preferred_lang"`
		PreferManualSubs    bool   `yaml:"prefer_manual_subs"`
		FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
		MaxBytes            int64  `yaml:"max_bytes"`
	} `yaml:"captions"`

	// Cache SQLite des transcriptions
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"cache"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	LogLevel string `yaml:"log_level"`

	// yt-dlp
	YtDlp struct {
		Name         string `yaml:"name"`
		Path         string `yaml:"path"`
		ShowWarnings bool   `yaml:"show_warnings"`

		// ResolvedPath contient le chemin effectif vers l'exécutable.
		// Vide : on cherche Name dans le PATH.
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.Output.Dir = "."
	c.Output.Format = string(model.FormatJSON)
	c.Output.GroupMode = string(model.GroupSentence)
	c.Output.SaveInSubdir = false
	c.Output.CopyToClipboard = false

	c.Segmentation.GapThresholdSeconds = transcript.DefaultGapThreshold
	c.Segmentation.MaxChars = transcript.DefaultMaxChars
	c.Segmentation.MaxWords = transcript.DefaultMaxWords

	c.Paragraph.MinSentences = transcript.DefaultParagraphMinSentences
	c.Paragraph.MaxSentences = transcript.DefaultParagraphMaxSentences

	c.Captions.PreferredLang = "en"
	c.Captions.PreferManualSubs = true
	c.Captions.FetchTimeoutSeconds = 15
	c.Captions.MaxBytes = 10_000_000

	c.Cache.Enabled = true
	c.Cache.Path = "shadowscribe.db"

	c.Server.Addr = "127.0.0.1:8787"

	c.LogLevel = "info"

	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut, normalisée.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration %s invalide : %w", path, err)
	}
	return cfg, nil
}

// Path retourne le chemin du fichier chargé ("" pour Default()).
func (c *Config) Path() string {
	return c.configFilePath
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

func (c *Config) normalizeConfig() {
	c.Output.Dir = filepath.Clean(strings.TrimSpace(c.Output.Dir))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = string(model.FormatJSON)
	}
	c.Output.GroupMode = strings.ToLower(strings.TrimSpace(c.Output.GroupMode))
	if c.Output.GroupMode == "" {
		c.Output.GroupMode = string(model.GroupSentence)
	}

	c.Captions.PreferredLang = strings.TrimSpace(c.Captions.PreferredLang)
	if c.Captions.FetchTimeoutSeconds <= 0 {
		c.Captions.FetchTimeoutSeconds = 15
	}

	c.Cache.Path = strings.TrimSpace(c.Cache.Path)
	if c.Cache.Path != "" {
		c.Cache.Path = filepath.Clean(c.Cache.Path)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.ResolveYtDlpPath()
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// chemin qui finit déjà par l'exécutable, sinon c'est un répertoire
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}

// SegmentOptions convertit la section segmentation en options du découpeur.
func (c *Config) SegmentOptions() transcript.Options {
	opts := transcript.DefaultOptions()
	opts.GapThreshold = c.Segmentation.GapThresholdSeconds
	opts.MaxChars = c.Segmentation.MaxChars
	opts.MaxWords = c.Segmentation.MaxWords
	return opts
}

func (c *Config) RegroupOptions() transcript.RegroupOptions {
	opts := transcript.DefaultRegroupOptions()
	opts.MinSentences = c.Paragraph.MinSentences
	opts.MaxSentences = c.Paragraph.MaxSentences
	return opts
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Captions.FetchTimeoutSeconds) * time.Second
}

// OutputFormat et GroupMode : valeurs déjà validées par Validate.
func (c *Config) OutputFormat() model.Format {
	f, _ := model.ParseFormat(c.Output.Format)
	return f
}

func (c *Config) GroupMode() model.GroupMode {
	m, _ := model.ParseGroupMode(c.Output.GroupMode)
	return m
}
