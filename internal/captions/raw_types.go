package captions

import "strings"

// rawJSON3 : structure "brute" d'une piste YouTube json3 (via yt-dlp ou l'API timedtext).
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// rawListItem : format youtube-transcript, [{"text","start","duration"}] en secondes.
type rawListItem struct {
	Text     *string  `json:"text"`
	Start    *float64 `json:"start"`
	Duration *float64 `json:"duration"`
}

// isNewlineOnly : segs ne contenant que "\n", "\\n" ou des espaces.
// aAppend les produit entre deux lignes des captions automatiques.
func (e rawEvent) isNewlineOnly() bool {
	if len(e.Segs) == 0 {
		return false
	}
	for _, s := range e.Segs {
		t := strings.TrimSpace(s.Utf8)
		if t == "" || t == "\\n" {
			continue
		}
		return false
	}
	return true
}

func (e rawEvent) startMs() int64 {
	if e.TStartMs == nil {
		return 0
	}
	return *e.TStartMs
}

func (e rawEvent) durationMs() int64 {
	if e.DDurationMs == nil {
		return 0
	}
	return *e.DDurationMs
}
