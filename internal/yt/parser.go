package yt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

const origSuffix = "-orig"

// ParseYTDLP transforme la sortie JSON de yt-dlp en model.Meta.
// Seules les pistes json3 sont gardées : c'est le format que lit internal/captions.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}
	if y.ID == "" {
		return nil, fmt.Errorf("sortie yt-dlp sans id de vidéo")
	}

	return &model.Meta{
		ID:         y.ID,
		Title:      y.Title,
		Uploader:   y.Uploader,
		Duration:   y.Duration,
		ManualSubs: selectTracks(y.Subtitles, model.SubSourceManual, false),
		AutoSubs:   selectTracks(y.AutomaticCaptions, model.SubSourceAutomatic, true),
	}, nil
}

// selectTracks garde les pistes json3. Pour les captions automatiques on ne
// garde que les langues "-orig" (les autres sont des traductions machine),
// et le suffixe est retiré du code langue.
// Tri par langue : l'ordre des maps Go n'est pas stable.
func selectTracks(byLang map[string][]subtitleItem, src model.SubSource, origOnly bool) []model.SubtitleTrack {
	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		if origOnly && !strings.HasSuffix(lang, origSuffix) {
			continue
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var out []model.SubtitleTrack
	for _, lang := range langs {
		for _, it := range byLang[lang] {
			pf, err := model.ParseFormat(it.Ext)
			if err != nil || pf != model.FormatJSON3 || it.URL == "" {
				continue
			}
			out = append(out, model.SubtitleTrack{
				Lang:   strings.TrimSuffix(lang, origSuffix),
				Format: pf,
				URL:    it.URL,
				Source: src,
			})
		}
	}
	return out
}
