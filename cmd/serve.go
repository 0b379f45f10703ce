package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/recipebox/internal/handlers"
	"github.com/lehigh-university-libraries/recipebox/internal/images"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port           string
		allowedOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the recipe JSON API",
		Long: `Starts the recipe browser API on the specified port.

The recipe list is fetched once at startup and can be refreshed with
POST /api/recipes/fetch. Filtering, paging and the saved list are shared by
every client of the server.`,
		Example: `  # Start server on default port 8888
  recipebox serve

  # Start server on custom port, allowing a local front end
  recipebox serve --port 3000 --allowed-origin http://localhost:5173`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := s.Fetch(cmd.Context()); err != nil {
				slog.Warn("Starting with an empty recipe list", "source", opts.cfg.Source, "err", err)
			}

			handler := handlers.New(s, images.NewFetcher(opts.cfg.HTTPTimeout))
			c := cors.New(cors.Options{
				AllowedOrigins: allowedOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
				AllowedHeaders: []string{"Content-Type", handlers.RequestIDHeader},
				ExposedHeaders: []string{handlers.RequestIDHeader},
			})

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           c.Handler(handler.Router()),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Recipebox API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allowed-origin", []string{"*"}, "Origins allowed to call the API")

	return cmd
}
