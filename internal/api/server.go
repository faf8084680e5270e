package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

const DefaultMaxBodyBytes = 10 << 20

// TranscriptStore : sous-ensemble de *store.Store utilisé par l'API.
type TranscriptStore interface {
	Transcript(ctx context.Context, videoID string) (store.Video, []model.Sentence, error)
	ListVideos(ctx context.Context) ([]store.Video, error)
	DeleteVideo(ctx context.Context, videoID string) error
	Ping(ctx context.Context) error
}

type ServerConfig struct {
	Addr           string
	Store          TranscriptStore // nil : cache désactivé
	SegmentOptions transcript.Options // NewID sert aussi à /merge et /split
	RegroupOptions transcript.RegroupOptions
	MaxBodyBytes   int64
	Logger         *slog.Logger
	StartTime      time.Time
	Version        string
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
