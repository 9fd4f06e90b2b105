package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/doeshing/fakenews-go/internal/infrastructure/web"
)

// NewServeCommand starts the browser UI.
func NewServeCommand(rt *Runtime) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the detector as a web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}
			cfg := container.Config
			if addr == "" {
				addr = cfg.Server.Addr
			}

			store, err := container.SessionStore(ctx)
			if err != nil {
				return err
			}

			gin.SetMode(cfg.Server.GinMode)
			server, err := web.NewServer(web.Deps{
				Controller:     container.Controller,
				Predictor:      container.Predictor,
				Fetcher:        container.Fetcher,
				Store:          store,
				Logger:         container.Logger.Slog(),
				SessionTTL:     cfg.SessionTTLDuration(),
				InputRows:      cfg.Display.InputHeight,
				TruncateLength: cfg.Display.TruncateLength,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Fake News Detector listening on %s\n", addr)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
