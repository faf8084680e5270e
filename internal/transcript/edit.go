package transcript

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// ErrInvalidSplit : l'offset de découpe laisse une moitié vide.
var ErrInvalidSplit = errors.New("invalid split offset")

// Merge fusionne deux phrases consécutives (outil d'édition).
// Les surlignages de b sont décalés de la longueur de a + l'espace de jonction.
func Merge(a, b model.Sentence, newID IDFunc) model.Sentence {
	if newID == nil {
		newID = NewUUID
	}
	offset := utf8.RuneCountInString(a.Text) + 1

	highlights := make([]model.Highlight, 0, len(a.Highlights)+len(b.Highlights))
	highlights = append(highlights, a.Highlights...)
	for _, h := range b.Highlights {
		h.Start += offset
		h.End += offset
		highlights = append(highlights, h)
	}

	return model.Sentence{
		ID:          newID(),
		Text:        a.Text + " " + b.Text,
		StartTime:   a.StartTime,
		EndTime:     b.EndTime,
		Translation: joinNonEmpty(a.Translation, b.Translation),
		Highlights:  highlights,
	}
}

// Split coupe s à l'offset `at` (en runes).
// Le temps de coupure est estimé linéairement : (EndTime-StartTime) / #runes
// par rune, comme pour les events multi-phrases des sous-titres manuels.
// Les surlignages à cheval sur la coupure sont perdus ; la traduction reste
// sur la première moitié.
func Split(s model.Sentence, at int, newID IDFunc) (model.Sentence, model.Sentence, error) {
	if newID == nil {
		newID = NewUUID
	}
	runes := []rune(s.Text)
	if at <= 0 || at >= len(runes) {
		return model.Sentence{}, model.Sentence{}, ErrInvalidSplit
	}

	leftRaw, rightRaw := string(runes[:at]), string(runes[at:])
	left := strings.TrimSpace(leftRaw)
	right := strings.TrimSpace(rightRaw)
	if left == "" || right == "" {
		return model.Sentence{}, model.Sentence{}, ErrInvalidSplit
	}
	// décalage des offsets de la moitié droite (espaces de tête retirés)
	rightShift := at + (utf8.RuneCountInString(rightRaw) - utf8.RuneCountInString(strings.TrimLeft(rightRaw, " \t\n")))

	perRune := 0.0
	if len(runes) > 0 && s.EndTime > s.StartTime {
		perRune = (s.EndTime - s.StartTime) / float64(len(runes))
	}
	cut := s.StartTime + roundMillis(perRune*float64(at))

	first := model.Sentence{
		ID:          newID(),
		Text:        left,
		StartTime:   s.StartTime,
		EndTime:     cut,
		Translation: s.Translation,
		Highlights:  []model.Highlight{},
	}
	second := model.Sentence{
		ID:         newID(),
		Text:       right,
		StartTime:  cut,
		EndTime:    s.EndTime,
		Highlights: []model.Highlight{},
	}

	leftLen := utf8.RuneCountInString(left)
	for _, h := range s.Highlights {
		switch {
		case h.End <= leftLen:
			first.Highlights = append(first.Highlights, h)
		case h.Start >= rightShift:
			h.Start -= rightShift
			h.End -= rightShift
			second.Highlights = append(second.Highlights, h)
		}
	}
	return first, second, nil
}

// roundMillis arrondit des secondes à la milliseconde.
func roundMillis(sec float64) float64 {
	return math.Round(sec*1000) / 1000
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
