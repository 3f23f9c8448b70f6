package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/pkg/live"
	"github.com/filament-ui/filament/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		assetPath string
		title     string
		logJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo app with live sessions",
		Long: `Start the live server: SSR page at /, WebSocket sessions at /live,
Prometheus metrics at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
			if logJSON {
				handler = slog.NewJSONHandler(os.Stderr, nil)
			}
			logger := slog.New(handler)

			server := live.NewServer(live.Config{
				Addr:      addr,
				App:       demoApp,
				AssetPath: assetPath,
				Logger:    logger,
				Page: render.Page{
					Title: title,
				},
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := server.ListenAndServe(ctx)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&assetPath, "asset-path", "/assets", "Base path for static assets")
	cmd.Flags().StringVar(&title, "title", "Filament", "Page title")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Emit JSON logs")

	return cmd
}
