package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/components/contactpage"
	"github.com/goliatone/go-contactform/pkg/render"
)

const readHeaderTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr          string
		basePath      string
		variant       string
		shutdownGrace time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("base-path") {
				a.cfg.Server.BasePath = basePath
			}
			if cmd.Flags().Changed("variant") {
				a.cfg.Page.ThemeVariant = variant
			}
			return a.serve(cmd.Context(), shutdownGrace)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "path prefix the page is mounted under")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant, e.g. dark")
	cmd.Flags().DurationVar(&shutdownGrace, "shutdown-grace", 10*time.Second, "time allowed for in-flight requests on shutdown")
	return cmd
}

func (a *app) serve(ctx context.Context, shutdownGrace time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	controller := a.controller()
	defer controller.Close()

	initCtx, cancel := context.WithTimeout(ctx, a.cfg.API.Timeout)
	if err := controller.Init(initCtx); err != nil {
		a.logger.Warn("Initial load failed", zap.Error(err))
	}
	cancel()

	component := contactpage.New(controller,
		contactpage.WithLogger(a.logger),
		contactpage.WithPageOptions(
			render.WithTitle(a.cfg.Page.Title),
			render.WithTheme(render.DefaultManifest(), a.cfg.Page.ThemeVariant),
		),
	)

	mux := http.NewServeMux()
	if _, err := component.RegisterRoutes(mux, a.cfg.Server.BasePath); err != nil {
		return err
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	a.logger.Info("Listening",
		zap.String("addr", a.cfg.Server.Addr),
		zap.String("page", contactpage.MountPath(a.cfg.Server.BasePath)),
		zap.String("api", a.cfg.API.BaseURL),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("Shutdown", zap.Error(err))
	}
	return nil
}
