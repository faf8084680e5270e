package api

import (
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
	Cache   string `json:"cache"` // ok | disabled | error
}

type VideoIDRequest struct {
	URL string `json:"url"`
}

type VideoIDResponse struct {
	VideoID  string `json:"video_id"`
	WatchURL string `json:"watch_url"`
}

type SegmentRequest struct {
	Fragments []model.CaptionFragment `json:"fragments"`
	Mode      string                  `json:"mode,omitempty"`
}

type RegroupRequest struct {
	Sentences []model.Sentence `json:"sentences"`
	Mode      string           `json:"mode,omitempty"`
}

type MergeRequest struct {
	A model.Sentence `json:"a"`
	B model.Sentence `json:"b"`
}

type SplitRequest struct {
	Sentence model.Sentence `json:"sentence"`
	At       int            `json:"at"` // offset en runes
}

type SentencesResponse struct {
	Sentences []model.Sentence `json:"sentences"`
}

type UnitsResponse struct {
	Mode      model.GroupMode     `json:"mode"`
	Sentences int                 `json:"sentences"`
	Units     []model.GroupedUnit `json:"units"`
}

type VideosResponse struct {
	Videos []store.Video `json:"videos"`
}

type VideoUnitsResponse struct {
	Video store.Video `json:"video"`
	UnitsResponse
}
