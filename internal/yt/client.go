package yt

import "context"

// Interface est l'abstraction du collaborateur yt-dlp utilisée par l'application.
// Les tests de internal/app fournissent une implémentation factice.
type Interface interface {
	CheckBinary() error
	GetVersion(ctx context.Context) (string, error)
	ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error)
}
