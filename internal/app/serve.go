package app

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/api"
	"github.com/patrickprogramme/shadowscribe/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Serve démarre l'API HTTP et bloque jusqu'à l'annulation de ctx (Ctrl+C).
func (a *App) Serve(ctx context.Context) error {
	if err := a.applyFlags(); err != nil {
		return err
	}

	scfg := api.ServerConfig{
		Addr:           a.cfg.Server.Addr,
		SegmentOptions: a.segmentOptions(),
		RegroupOptions: a.regroupOptions(),
		Logger:         logging.WithComponent(a.logger, "api"),
		StartTime:      time.Now(),
		Version:        Version,
	}
	if a.cache != nil {
		scfg.Store = a.cache
	}
	srv := api.NewServer(scfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	a.ui.PrintInfo(ctx, fmt.Sprintf("API disponible sur http://%s (Ctrl+C pour quitter)", srv.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
