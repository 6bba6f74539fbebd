package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news_reader/internal/fetcher"
	"news_reader/internal/logger"
	"news_reader/internal/server"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the news list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			defer logger.Log.Info("Application stopped")

			a.screen.Reload(ctx)
			if a.cfg.RefreshInterval > 0 {
				go fetcher.StartRefresh(ctx, a.screen, a.cfg.RefreshInterval)
			}

			srv := &http.Server{
				Addr:              a.cfg.ListenAddr,
				Handler:           server.NewServer(a.screen, a.metrics).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Log.Infof("Starting HTTP server on %s", a.cfg.ListenAddr)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Log.Info("Shutting down...")
			ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			return srv.Shutdown(ctxShutdown)
		},
	}
}
