package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/internal/yt"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(MaxBodyMiddleware(cfg.MaxBodyBytes))

	r.Get("/health", healthHandler(cfg))
	r.Post("/video-id", videoIDHandler())
	r.Post("/segment", segmentHandler(cfg))
	r.Post("/regroup", regroupHandler(cfg))
	r.Post("/merge", mergeHandler(cfg))
	r.Post("/split", splitHandler(cfg))

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", listVideosHandler(cfg))
		r.Get("/{id}/units", videoUnitsHandler(cfg))
		r.Delete("/{id}", deleteVideoHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cache := "disabled"
		if cfg.Store != nil {
			cache = "ok"
			if err := cfg.Store.Ping(r.Context()); err != nil {
				cache = "error"
			}
		}
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
			Cache:   cache,
		})
	}
}

func videoIDHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VideoIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		id, ok := yt.ExtractVideoID(req.URL)
		if !ok {
			WriteError(w, http.StatusBadRequest, "no video id found in url", "INVALID_URL")
			return
		}
		WriteJSON(w, http.StatusOK, VideoIDResponse{VideoID: id, WatchURL: yt.WatchURL(id)})
	}
}

func segmentHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SegmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		mode, ok := parseMode(w, req.Mode)
		if !ok {
			return
		}

		sentences := transcript.Segment(req.Fragments, cfg.SegmentOptions)
		units := transcript.Regroup(sentences, mode, cfg.RegroupOptions)
		WriteJSON(w, http.StatusOK, UnitsResponse{Mode: mode, Sentences: len(sentences), Units: units})
	}
}

func regroupHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		mode, ok := parseMode(w, req.Mode)
		if !ok {
			return
		}

		units := transcript.Regroup(nonNil(req.Sentences), mode, cfg.RegroupOptions)
		WriteJSON(w, http.StatusOK, UnitsResponse{Mode: mode, Sentences: len(req.Sentences), Units: units})
	}
}

func mergeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MergeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if strings.TrimSpace(req.A.Text) == "" || strings.TrimSpace(req.B.Text) == "" {
			WriteError(w, http.StatusBadRequest, "both sentences need text", "BAD_REQUEST")
			return
		}

		merged := transcript.Merge(req.A, req.B, cfg.SegmentOptions.NewID)
		WriteJSON(w, http.StatusOK, SentencesResponse{Sentences: []model.Sentence{merged}})
	}
}

func splitHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SplitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		first, second, err := transcript.Split(req.Sentence, req.At, cfg.SegmentOptions.NewID)
		if errors.Is(err, transcript.ErrInvalidSplit) {
			WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_SPLIT")
			return
		}
		if err != nil {
			cfg.Logger.Error("split failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to split sentence", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, SentencesResponse{Sentences: []model.Sentence{first, second}})
	}
}

func listVideosHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Store == nil {
			WriteError(w, http.StatusServiceUnavailable, "cache disabled", "CACHE_DISABLED")
			return
		}
		videos, err := cfg.Store.ListVideos(r.Context())
		if err != nil {
			cfg.Logger.Error("list videos failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to list videos", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, VideosResponse{Videos: videos})
	}
}

func videoUnitsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Store == nil {
			WriteError(w, http.StatusServiceUnavailable, "cache disabled", "CACHE_DISABLED")
			return
		}
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "video id required", "BAD_REQUEST")
			return
		}
		mode, ok := parseMode(w, r.URL.Query().Get("mode"))
		if !ok {
			return
		}

		video, sentences, err := cfg.Store.Transcript(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "video not in cache", "NOT_FOUND")
			return
		}
		if err != nil {
			cfg.Logger.Error("load transcript failed", "video_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to load transcript", "INTERNAL_ERROR")
			return
		}

		units := transcript.Regroup(sentences, mode, cfg.RegroupOptions)
		WriteJSON(w, http.StatusOK, VideoUnitsResponse{
			Video:         video,
			UnitsResponse: UnitsResponse{Mode: mode, Sentences: len(sentences), Units: units},
		})
	}
}

func deleteVideoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Store == nil {
			WriteError(w, http.StatusServiceUnavailable, "cache disabled", "CACHE_DISABLED")
			return
		}
		id := chi.URLParam(r, "id")
		err := cfg.Store.DeleteVideo(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "video not in cache", "NOT_FOUND")
			return
		}
		if err != nil {
			cfg.Logger.Error("delete video failed", "video_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to delete video", "INTERNAL_ERROR")
			return
		}
		cfg.Logger.Info("video removed from cache", "video_id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// parseMode écrit une erreur 400 si le mode est inconnu.
func parseMode(w http.ResponseWriter, raw string) (model.GroupMode, bool) {
	mode, err := model.ParseGroupMode(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_MODE")
		return "", false
	}
	return mode, true
}

func nonNil(s []model.Sentence) []model.Sentence {
	if s == nil {
		return []model.Sentence{}
	}
	return s
}
