package captions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/fetch"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// LoadFile lit un fichier de sous-titres local.
// ".json3" -> json3 ; ".json" -> format liste, puis json3 si la forme ne correspond pas.
func LoadFile(path string) ([]model.CaptionFragment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture des sous-titres %s : %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case model.FormatJSON3.Extension():
		return ParseJSON3(b)
	case model.FormatJSON.Extension():
		frags, lerr := ParseList(b)
		if lerr == nil {
			return frags, nil
		}
		frags, jerr := ParseJSON3(b)
		if jerr == nil {
			return frags, nil
		}
		return nil, fmt.Errorf("%s : ni liste ni json3 : %w", path, errors.Join(lerr, jerr))
	default:
		return nil, fmt.Errorf("%s : extension non supportée (.json ou .json3)", path)
	}
}

// Download télécharge et décode une piste json3.
func Download(ctx context.Context, track model.SubtitleTrack, timeout time.Duration, maxBytes int64) ([]model.CaptionFragment, error) {
	if track.URL == "" {
		return nil, ErrNoTrack
	}
	if track.Format != "" && track.Format != model.FormatJSON3 {
		return nil, fmt.Errorf("piste %s : format %s non supporté", track.Lang, track.Format)
	}
	b, err := fetch.FetchBytesWithTimeout(ctx, track.URL, timeout, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("téléchargement des sous-titres (%s) : %w", track.Lang, err)
	}
	frags, err := ParseJSON3(b)
	if err != nil {
		return nil, fmt.Errorf("piste %s : %w", track.Lang, err)
	}
	return frags, nil
}
