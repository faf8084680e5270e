package logging

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// SegmentObserver trace le découpage et le regroupement au niveau debug.
type SegmentObserver struct {
	Logger *slog.Logger
}

var _ transcript.Observer = SegmentObserver{}

func NewSegmentObserver(logger *slog.Logger) SegmentObserver {
	return SegmentObserver{Logger: WithComponent(logger, "transcript")}
}

func (o SegmentObserver) SentenceFlushed(reason transcript.FlushReason, s model.Sentence) {
	if !o.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.Logger.Debug("sentence flushed",
		"reason", string(reason),
		"start", s.StartTime,
		"end", s.EndTime,
		"chars", len([]rune(s.Text)),
	)
}

func (o SegmentObserver) Segmented(st transcript.SegmentStats) {
	attrs := []any{
		"fragments", st.Fragments,
		"skipped", st.Skipped,
		"sentences", st.Sentences,
	}
	for _, reason := range slices.Sorted(maps.Keys(st.ByReason)) {
		attrs = append(attrs, "by_"+string(reason), st.ByReason[reason])
	}
	o.Logger.Debug("segmentation done", attrs...)
}

func (o SegmentObserver) Regrouped(st transcript.RegroupStats) {
	o.Logger.Debug("regroup done", "mode", st.Mode.String(), "sentences", st.Sentences, "units", st.Units)
}
