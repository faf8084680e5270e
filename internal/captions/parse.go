// Package captions convertit les pistes de sous-titres YouTube en
// model.CaptionFragment, l'entrée du découpeur de phrases.
package captions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

var (
	// ErrNoEvents : la piste ne contient aucun fragment exploitable.
	ErrNoEvents = errors.New("captions: no usable events")
	// ErrNoTrack : aucune piste de sous-titres disponible pour la vidéo.
	ErrNoTrack = errors.New("captions: no subtitle track")
)

// ParseJSON3 décode une piste json3 : un fragment par event.
// Les events sans segs ou qui ne sont qu'un retour à la ligne sont ignorés,
// les segs d'un même event sont concaténés puis nettoyés.
func ParseJSON3(b []byte) ([]model.CaptionFragment, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("parse json3: empty input: %w", ErrNoEvents)
	}
	var raw rawJSON3
	// pas de DisallowUnknownFields : json3 contient beaucoup de champs inutiles
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse json3: decode: %w", err)
	}

	out := make([]model.CaptionFragment, 0, len(raw.Events))
	for _, ev := range raw.Events {
		if len(ev.Segs) == 0 || ev.isNewlineOnly() {
			continue
		}
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.Utf8)
		}
		text := DecodeText(sb.String())
		if text == "" {
			continue
		}
		out = append(out, model.CaptionFragment{
			Text:     text,
			Start:    float64(ev.startMs()) / 1000,
			Duration: float64(ev.durationMs()) / 1000,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoEvents
	}
	return out, nil
}

// ParseList décode le format liste [{"text","start","duration"}].
// Un élément sans text ni start est refusé : ce n'est pas ce format.
func ParseList(b []byte) ([]model.CaptionFragment, error) {
	var items []rawListItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse list: decode: %w", err)
	}
	out := make([]model.CaptionFragment, 0, len(items))
	for i, it := range items {
		if it.Text == nil || it.Start == nil {
			return nil, fmt.Errorf("parse list: item %d: missing text or start", i)
		}
		var d float64
		if it.Duration != nil {
			d = *it.Duration
		}
		// fragments vides gardés : le découpeur les ignore lui-même
		out = append(out, model.CaptionFragment{
			Text:     DecodeText(*it.Text),
			Start:    *it.Start,
			Duration: d,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoEvents
	}
	return out, nil
}

// DecodeText décode les entités HTML (&amp;#39; etc.) et réduit les espaces.
// Certaines pistes sont doublement encodées, d'où le second passage.
func DecodeText(s string) string {
	s = html.UnescapeString(s)
	if strings.Contains(s, "&") {
		s = html.UnescapeString(s)
	}
	return strings.Join(strings.Fields(s), " ")
}
