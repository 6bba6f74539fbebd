package fetcher

import (
	"context"
	"time"

	"news_reader/internal/logger"
)

// Reloader перезагружает список новостей.
type Reloader interface {
	Reload(ctx context.Context)
}

// StartRefresh периодически вызывает r.Reload, пока не отменён ctx.
func StartRefresh(ctx context.Context, r Reloader, interval time.Duration) {
	log := logger.Log.WithFields(map[string]interface{}{
		"service":  "refresher",
		"interval": interval.String(),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Info("Starting new refresh cycle")
			r.Reload(ctx)

		case <-ctx.Done():
			log.Info("Stopping refresher by context")
			return
		}
	}
}
