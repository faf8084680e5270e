package model

import (
	"fmt"
	"strings"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown   SubSource = "unknown"
	SubSourceAutomatic SubSource = "automatic"
	SubSourceManual    SubSource = "manual"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	default:
		return "unknown subtitles"
	}
}

// SubtitleTrack décrit une piste de sous-titres associée à une vidéo.
type SubtitleTrack struct {
	Lang   string    `json:"lang"`
	Format Format    `json:"format,omitempty"`
	URL    string    `json:"url,omitempty"`
	Source SubSource `json:"source,omitempty"`
}

func (s SubtitleTrack) String() string {
	return fmt.Sprintf("SubtitleTrack(lang=%s, format=%s, source=%s)", s.Lang, s.Format, s.Source)
}

// Meta regroupe les métadonnées d'une vidéo YouTube utiles au shadowing.
type Meta struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Uploader   string          `json:"uploader,omitempty"`
	Duration   float64         `json:"duration,omitempty"` // secondes
	AutoSubs   []SubtitleTrack `json:"subtitles,omitempty"`
	ManualSubs []SubtitleTrack `json:"manual_subtitles,omitempty"`
}

func (m Meta) HasManualSubs() bool {
	return len(m.ManualSubs) != 0
}

func (m Meta) HasAutoSubs() bool {
	return len(m.AutoSubs) != 0
}

// TitleOrID retourne le titre, ou sinon l'ID de la vidéo
func (m Meta) TitleOrID() string {
	if s := strings.TrimSpace(m.Title); s != "" {
		return s
	}
	return m.ID
}

// PickTrack choisit la piste à télécharger.
// Ordre : manuelle dans la langue voulue (si preferManual), auto dans la langue,
// puis n'importe quelle piste manuelle, puis n'importe quelle auto.
// La langue est comparée sur le préfixe ("en" matche "en-US" et "en-orig").
func (m Meta) PickTrack(lang string, preferManual bool) (SubtitleTrack, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))

	matches := func(t SubtitleTrack) bool {
		if t.URL == "" {
			return false
		}
		if lang == "" {
			return true
		}
		tl := strings.ToLower(t.Lang)
		return tl == lang || strings.HasPrefix(tl, lang+"-")
	}
	first := func(tracks []SubtitleTrack, pred func(SubtitleTrack) bool) (SubtitleTrack, bool) {
		for _, t := range tracks {
			if pred(t) {
				return t, true
			}
		}
		return SubtitleTrack{}, false
	}
	usable := func(t SubtitleTrack) bool { return t.URL != "" }

	order := [][]SubtitleTrack{m.AutoSubs, m.ManualSubs}
	if preferManual {
		order = [][]SubtitleTrack{m.ManualSubs, m.AutoSubs}
	}
	for _, tracks := range order {
		if t, ok := first(tracks, matches); ok {
			return t, true
		}
	}
	for _, tracks := range order {
		if t, ok := first(tracks, usable); ok {
			return t, true
		}
	}
	return SubtitleTrack{}, false
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Duration=%.0fs, Subtitles=%d]",
		m.ID, m.Title, m.Uploader, m.Duration, len(m.AutoSubs)+len(m.ManualSubs))
}

// Pretty retourne une fiche multi-lignes simple.
func (m Meta) Pretty() string {
	langsFrom := func(tracks []SubtitleTrack) []string {
		out := make([]string, 0, len(tracks))
		for _, t := range tracks {
			if t.Lang != "" {
				out = append(out, t.Lang)
			}
		}
		return out
	}

	formatLangs := func(list []string) string {
		if len(list) == 0 {
			return "(aucun)"
		}
		return strings.Join(list, ", ")
	}

	return fmt.Sprintf(
		"Meta:\n"+
			"  ID         : %s\n"+
			"  Title      : %q\n"+
			"  Uploader   : %s\n"+
			"  Duration   : %.0fs\n"+
			"  AutoSubs   : %s\n"+
			"  ManualSubs : %s\n",
		m.ID,
		m.Title,
		m.Uploader,
		m.Duration,
		formatLangs(langsFrom(m.AutoSubs)),
		formatLangs(langsFrom(m.ManualSubs)),
	)
}
