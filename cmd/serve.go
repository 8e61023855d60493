package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jsench/Project-Wheatley/src/routes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the census HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("auth.jwt_secret (or JWT_SECRET) must be set")
		}
		gdb, err := openDB()
		if err != nil {
			return err
		}
		router := routes.NewRouter(cfg, logger, routes.NewServices(gdb, cfg, logger))

		srv := &http.Server{
			Addr:              cfg.Host,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() {
			logger.Info("Server is running", zap.String("host", cfg.Host), zap.String("mode", cfg.Mode))
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
		}

		logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
