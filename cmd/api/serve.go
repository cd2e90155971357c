package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	missionarchive "github.com/4oBuko/mission-archive/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the GraphQL and REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(load)
			if err != nil {
				return err
			}
			defer a.close()

			missionService, geographyService := a.services()
			server, err := missionarchive.NewServer(a.cfg.HTTP.Addr, missionService, geographyService, a.store, a.logger)
			if err != nil {
				return err
			}

			serverErr := make(chan error, 1)
			go func() {
				if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-serverErr:
				return err
			case sig := <-quit:
				a.logger.Info("shutting down server", zap.Stringer("signal", sig))
			}

			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			a.logger.Info("server exited")
			return nil
		},
	}
}
