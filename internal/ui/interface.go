package ui

import "context"

type Interface interface {
	// GetVideoURL doit renvoyer une URL YouTube valide et son ID.
	// Implémentation terminale : priorité clipboard -> prompt
	GetVideoURL(ctx context.Context) (url, videoID string, err error)

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
