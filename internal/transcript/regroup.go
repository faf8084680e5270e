package transcript

import (
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// Regroup agrège des phrases consécutives selon le mode demandé.
//
//   - model.GroupSentence : identité, la slice d'entrée est retournée telle quelle.
//   - model.GroupTotal : une seule unité couvrant tout le clip (vide si entrée vide).
//   - model.GroupParagraph : un paragraphe se ferme après une phrase finissant par
//     "." dès MinSentences phrases, ou de force à MaxSentences, ou sur la
//     dernière phrase.
//
// Seul "." ferme un paragraphe, contrairement à Segment qui accepte aussi ! et ?.
// Cette asymétrie est conservée pour rester compatible avec les découpages
// déjà enregistrés.
//
// Un mode inconnu est traité comme model.GroupSentence ; la validation se fait en
// amont avec model.ParseGroupMode.
func Regroup(sentences []model.Sentence, mode model.GroupMode, opts RegroupOptions) []model.GroupedUnit {
	opts = opts.withDefaults()

	var units []model.GroupedUnit
	switch mode {
	case model.GroupTotal:
		units = regroupTotal(sentences, opts)
	case model.GroupParagraph:
		units = regroupParagraphs(sentences, opts)
	default:
		units = sentences
	}

	opts.Observer.Regrouped(RegroupStats{
		Mode:      mode,
		Sentences: len(sentences),
		Units:     len(units),
	})
	return units
}

func regroupTotal(sentences []model.Sentence, opts RegroupOptions) []model.GroupedUnit {
	if len(sentences) == 0 {
		return []model.GroupedUnit{}
	}
	return []model.GroupedUnit{mergeRun(sentences, opts.NewID)}
}

func regroupParagraphs(sentences []model.Sentence, opts RegroupOptions) []model.GroupedUnit {
	units := make([]model.GroupedUnit, 0, len(sentences)/opts.MinSentences+1)

	start := 0 // début du paragraphe en attente dans sentences
	for i, s := range sentences {
		size := i - start + 1
		isLast := i == len(sentences)-1

		if (size >= opts.MinSentences && endsWithPeriod(s.Text)) ||
			size >= opts.MaxSentences ||
			isLast {
			units = append(units, mergeRun(sentences[start:i+1], opts.NewID))
			start = i + 1
		}
	}
	return units
}

// mergeRun fusionne une suite non vide de phrases en une unité.
func mergeRun(run []model.Sentence, newID IDFunc) model.GroupedUnit {
	texts := make([]string, 0, len(run))
	for _, s := range run {
		texts = append(texts, s.Text)
	}
	return model.GroupedUnit{
		ID:         newID(),
		Text:       strings.Join(texts, " "),
		StartTime:  run[0].StartTime,
		EndTime:    run[len(run)-1].EndTime,
		Highlights: []model.Highlight{},
	}
}
