// Package transcript transforme un flux de captions horodatées en phrases
// (Segment) puis regroupe ces phrases en unités d'étude (Regroup).
//
// Fonctions pures : pas d'I/O, pas d'état partagé. Les seuls effets de bord
// sont les appels à Options.NewID et à Options.Observer, tous deux injectés.
package transcript

import (
	"strings"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// Segment découpe les fragments (ordonnés par Start) en phrases.
//
// Passe unique, accumulation gloutonne. Pour chaque fragment non vide :
//  1. une pause >= GapThreshold depuis la fin du fragment précédent ferme la
//     phrase en cours AVANT d'ajouter le fragment ;
//  2. le texte est ajouté, la fin de phrase avance à Start+Duration ;
//  3. la phrase est fermée si (dans cet ordre) le fragment finit par . ! ?,
//     la phrase atteint MaxChars runes, ou MaxWords mots, ou c'est le dernier
//     fragment non vide.
//
// Les fragments sans texte sont ignorés comme s'ils n'existaient pas.
// Aucune validation : une entrée désordonnée donne des écarts négatifs qui ne
// coupent jamais. Ne retourne jamais nil.
func Segment(fragments []model.CaptionFragment, opts Options) []model.Sentence {
	opts = opts.withDefaults()

	sentences := make([]model.Sentence, 0)
	stats := SegmentStats{
		Fragments: len(fragments),
		ByReason:  make(map[FlushReason]int),
	}

	// index du dernier fragment qui porte du texte : c'est lui qui déclenche
	// la fermeture "fin d'entrée"
	last := -1
	for i := len(fragments) - 1; i >= 0; i-- {
		if strings.TrimSpace(fragments[i].Text) != "" {
			last = i
			break
		}
	}

	var (
		current      strings.Builder // accumulateur de la phrase courante
		currentStart float64
		currentEnd   float64
		lastEnd      float64
		hasLastEnd   bool // lastEnd n'a de sens qu'après le premier fragment
	)

	commit := func(reason FlushReason) {
		txt := strings.TrimSpace(current.String())
		current.Reset()
		if txt == "" {
			return
		}
		s := model.Sentence{
			ID:         opts.NewID(),
			Text:       txt,
			StartTime:  currentStart,
			EndTime:    currentEnd,
			Highlights: []model.Highlight{},
		}
		sentences = append(sentences, s)
		stats.ByReason[reason]++
		opts.Observer.SentenceFlushed(reason, s)
	}

	for i, frag := range fragments {
		text := normalizeWhitespace(frag.Text)
		if text == "" {
			stats.Skipped++
			continue
		}

		if current.Len() == 0 {
			currentStart = frag.Start
		}

		// pause : on coupe avant d'ajouter ce fragment
		if hasLastEnd && frag.Start-lastEnd >= opts.GapThreshold && current.Len() > 0 {
			commit(ReasonTimeGap)
			currentStart = frag.Start
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(text)

		currentEnd = frag.Start + frag.Duration
		lastEnd = currentEnd
		hasLastEnd = true

		acc := current.String()
		switch {
		case endsWithTerminator(text):
			commit(ReasonPunctuation)
		case runeLen(acc) >= opts.MaxChars:
			commit(ReasonMaxLength)
		case wordCount(acc) >= opts.MaxWords:
			commit(ReasonMaxWords)
		case i == last:
			commit(ReasonEndOfInput)
		}
	}

	stats.Sentences = len(sentences)
	opts.Observer.Segmented(stats)
	return sentences
}
