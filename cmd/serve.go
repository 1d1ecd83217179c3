package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"moodbite/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := routes.SetupRouter(routes.Deps{
		Log:          a.log,
		Metrics:      a.metrics,
		Gatherer:     a.registry,
		DB:           a.store,
		Users:        a.store,
		JWTSecret:    []byte(a.cfg.JWTSecret),
		TokenTTL:     a.cfg.JWTTTL,
		SecureCookie: a.cfg.IsProduction(),
		ListLimit:    a.cfg.ListDefaultEntries,
		RecentLimit:  a.cfg.DashboardRecentEntries,
		Location:     a.cfg.Location(),
		Auth:         a.auth,
		Entries:      a.entries,
		Insights:     a.insights,
		Chat:         a.chat,
		Analytics:    a.analytics,
		Realtime:     a.realtime,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
