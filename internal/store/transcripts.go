package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// Video : ligne de la table videos.
type Video struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Lang      string  `json:"lang,omitempty"`
	Source    string  `json:"source,omitempty"`
	Sentences int     `json:"sentences"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// SaveTranscript remplace la transcription de la vidéo en une transaction.
func (s *Store) SaveTranscript(ctx context.Context, v Video, sentences []model.Sentence) error {
	if v.ID == "" {
		return fmt.Errorf("save transcript: empty video id")
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save transcript: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO videos (id, title, uploader, duration, lang, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			uploader = excluded.uploader,
			duration = excluded.duration,
			lang = excluded.lang,
			source = excluded.source,
			updated_at = datetime('now')`,
		v.ID, v.Title, v.Uploader, v.Duration, v.Lang, v.Source); err != nil {
		return fmt.Errorf("save transcript: upsert video: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sentences WHERE video_id = ?`, v.ID); err != nil {
		return fmt.Errorf("save transcript: clear sentences: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sentences (video_id, position, id, text, start_time, end_time, translation, highlights)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save transcript: prepare: %w", err)
	}
	defer stmt.Close()

	for i, sen := range sentences {
		hl := sen.Highlights
		if hl == nil {
			hl = []model.Highlight{}
		}
		hlJSON, err := json.Marshal(hl)
		if err != nil {
			return fmt.Errorf("save transcript: highlights %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, v.ID, i, sen.ID, sen.Text, sen.StartTime, sen.EndTime, sen.Translation, string(hlJSON)); err != nil {
			return fmt.Errorf("save transcript: sentence %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save transcript: commit: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("transcript cached", "video_id", v.ID, "sentences", len(sentences))
	}
	return nil
}

// Transcript retourne la vidéo et ses phrases dans l'ordre d'origine.
func (s *Store) Transcript(ctx context.Context, videoID string) (Video, []model.Sentence, error) {
	var v Video
	err := s.conn.QueryRowContext(ctx, `
		SELECT v.id, v.title, v.uploader, v.duration, v.lang, v.source, v.updated_at,
		       (SELECT COUNT(*) FROM sentences WHERE video_id = v.id)
		FROM videos v WHERE v.id = ?`, videoID).
		Scan(&v.ID, &v.Title, &v.Uploader, &v.Duration, &v.Lang, &v.Source, &v.UpdatedAt, &v.Sentences)
	if errors.Is(err, sql.ErrNoRows) {
		return Video{}, nil, ErrNotFound
	}
	if err != nil {
		return Video{}, nil, fmt.Errorf("get video %s: %w", videoID, err)
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, text, start_time, end_time, translation, highlights
		FROM sentences WHERE video_id = ? ORDER BY position`, videoID)
	if err != nil {
		return Video{}, nil, fmt.Errorf("list sentences %s: %w", videoID, err)
	}
	defer rows.Close()

	out := make([]model.Sentence, 0, v.Sentences)
	for rows.Next() {
		var sen model.Sentence
		var hl string
		if err := rows.Scan(&sen.ID, &sen.Text, &sen.StartTime, &sen.EndTime, &sen.Translation, &hl); err != nil {
			return Video{}, nil, fmt.Errorf("scan sentence: %w", err)
		}
		sen.Highlights = []model.Highlight{}
		if err := json.Unmarshal([]byte(hl), &sen.Highlights); err != nil {
			return Video{}, nil, fmt.Errorf("decode highlights of %s: %w", sen.ID, err)
		}
		out = append(out, sen)
	}
	if err := rows.Err(); err != nil {
		return Video{}, nil, fmt.Errorf("iterate sentences: %w", err)
	}
	return v, out, nil
}

// ListVideos : vidéos en cache, la plus récente d'abord.
func (s *Store) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT v.id, v.title, v.uploader, v.duration, v.lang, v.source, v.updated_at,
		       (SELECT COUNT(*) FROM sentences WHERE video_id = v.id)
		FROM videos v ORDER BY v.updated_at DESC, v.id`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := []Video{}
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Uploader, &v.Duration, &v.Lang, &v.Source, &v.UpdatedAt, &v.Sentences); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// DeleteVideo supprime la vidéo et ses phrases (cascade).
func (s *Store) DeleteVideo(ctx context.Context, videoID string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, videoID)
	if err != nil {
		return fmt.Errorf("delete video %s: %w", videoID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
