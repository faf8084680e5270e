package transcript

import "github.com/patrickprogramme/shadowscribe/pkg/model"

// FlushReason indique pourquoi une phrase a été fermée.
type FlushReason string

const (
	ReasonPunctuation FlushReason = "punctuation"
	ReasonMaxLength   FlushReason = "max_length"
	ReasonMaxWords    FlushReason = "max_words"
	ReasonEndOfInput  FlushReason = "end_of_input"
	ReasonTimeGap     FlushReason = "time_gap"
)

// SegmentStats : bilan d'un appel à Segment.
type SegmentStats struct {
	Fragments int                 // fragments reçus
	Skipped   int                 // fragments sans texte
	Sentences int                 // phrases émises
	ByReason  map[FlushReason]int // phrases émises par raison
}

// RegroupStats : bilan d'un appel à Regroup.
type RegroupStats struct {
	Mode      model.GroupMode
	Sentences int
	Units     int
}

// Observer reçoit les statistiques de diagnostic du segmenteur et du regroupement.
// Les appels sont synchrones, dans la goroutine de l'appelant.
type Observer interface {
	SentenceFlushed(reason FlushReason, s model.Sentence)
	Segmented(stats SegmentStats)
	Regrouped(stats RegroupStats)
}

// NopObserver ignore tout.
type NopObserver struct{}

func (NopObserver) SentenceFlushed(FlushReason, model.Sentence) {}
func (NopObserver) Segmented(SegmentStats)                      {}
func (NopObserver) Regrouped(RegroupStats)                      {}
