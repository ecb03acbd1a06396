package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/httpapi"
)

const (
	defaultListenAddr = ":8080"
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API under /api/v1 and Prometheus metrics under /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := a.circulation(ctx)
			if err != nil {
				return err
			}

			if !a.v.GetBool(verboseKey) {
				gin.SetMode(gin.ReleaseMode)
			}

			server := &http.Server{
				Addr:              a.v.GetString(listenKey),
				Handler:           httpapi.NewRouter(svc, a.registry),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- server.ListenAndServe()
			}()

			a.ok("listening on %s (engine %s)", server.Addr, a.v.GetString(engineKey))

			select {
			case err = <-serveErr:
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err = server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			a.ok("stopped")

			return nil
		},
	}

	cmd.Flags().String("listen", defaultListenAddr, "Listen address")
	_ = a.v.BindPFlag(listenKey, cmd.Flags().Lookup("listen"))

	return cmd
}
