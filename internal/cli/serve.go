package cli

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

	"github.com/rideshareai/rideshare-backend-go/internal/api"
	"github.com/rideshareai/rideshare-backend-go/internal/metrics"
	"github.com/rideshareai/rideshare-backend-go/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	build BuildInfo
}

func NewServeCmd(build BuildInfo) *ServeCmd {
	return &ServeCmd{build: build}
}

func (c *ServeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			start := time.Now()
			a, err := loadApp(ctx, cmd)
			if err != nil {
				return err
			}
			a.log.Info("dataset ready", "rows", a.ds.Len(), "source", a.ds.Source(), "elapsed", since(start))

			ag, ex, err := a.collaborators()
			if err != nil {
				return err
			}

			metrics.BuildInfo.WithLabelValues(c.build.Version, c.build.Commit, c.build.Date).Set(1)

			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			limiter := middleware.NewRateLimiter(a.cfg.RateLimit, a.cfg.RateWindow)
			defer limiter.Stop()
			router := api.SetupRouter(api.Options{
				Logger:              a.log,
				Dataset:             a.ds,
				Agent:               ag,
				Explainer:           ex,
				AllowedOrigins:      a.cfg.AllowedOrigins,
				CollaboratorTimeout: a.cfg.LLMTimeout,
				CacheTTL:            a.cfg.ExplainCacheTTL,
				RateLimiter:         limiter,
			})

			srv := &http.Server{
				Addr:              a.cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server starting", "addr", a.cfg.Port, "version", c.build.Version)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
	return cmd
}
