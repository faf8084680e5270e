package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/patrickprogramme/shadowscribe/internal/captions"
	"github.com/patrickprogramme/shadowscribe/internal/fsutil"
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/internal/yt"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// loadCaptions : fichier local (-captions) ou yt-dlp + téléchargement de la piste.
func (a *App) loadCaptions(ctx context.Context, url, videoID string) ([]model.CaptionFragment, store.Video, error) {
	video := store.Video{ID: videoID}

	if a.flags.CaptionsPath != "" {
		frags, err := captions.LoadFile(a.flags.CaptionsPath)
		if err != nil {
			return nil, video, err
		}
		video.Source = "file"
		return frags, video, nil
	}

	if a.ytClient == nil {
		dl, _, err := yt.InitYtDlp(ctx, a.cfg, a.logger)
		if err != nil {
			return nil, video, fmt.Errorf("yt init: %w", err)
		}
		a.ytClient = dl
	}

	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()

	raw, err := a.ytClient.ExtractRaw(exCtx, yt.WatchURL(videoID))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, video, fmt.Errorf("opération annulée: %w", err)
		}
		return nil, video, fmt.Errorf("extract raw: %w", err)
	}
	for _, w := range raw.Warnings {
		a.logger.Warn("yt-dlp", "message", w)
	}

	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return nil, video, fmt.Errorf("parse ytdlp: %w", err)
	}
	a.ui.PrintInfo(ctx, meta.Pretty())

	track, ok := meta.PickTrack(a.cfg.Captions.PreferredLang, a.cfg.Captions.PreferManualSubs)
	if !ok {
		return nil, video, fmt.Errorf("%s: %w", meta.TitleOrID(), captions.ErrNoTrack)
	}
	a.logger.Info("subtitle track selected", "video_id", videoID, "lang", track.Lang, "source", string(track.Source))

	frags, err := a.download(ctx, track, a.cfg.FetchTimeout(), a.cfg.Captions.MaxBytes)
	if err != nil {
		return nil, video, err
	}

	video.Title = meta.Title
	video.Uploader = meta.Uploader
	video.Duration = meta.Duration
	video.Lang = track.Lang
	video.Source = string(track.Source)
	return frags, video, nil
}

// BuildSentences découpe les fragments en phrases.
func BuildSentences(frags []model.CaptionFragment, opts transcript.Options) []model.Sentence {
	return transcript.Segment(frags, opts)
}

// OutputPath : <dir>[/<titre>]/<id>.<mode>.<ext>
func OutputPath(dir, subdir, videoID string, mode model.GroupMode, format model.Format) string {
	return fsutil.OutputPath(dir, subdir, videoID+"."+mode.String(), format.Extension())
}

// SaveUnits sérialise les unités et les écrit de façon atomique.
func SaveUnits(units []model.GroupedUnit, format model.Format, path string) error {
	data, err := transcript.Render(units, format)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("écriture de %s: %w", path, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
