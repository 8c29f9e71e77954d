package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/app"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/config"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/gelf"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/logging"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/router"
)

const (
	serviceName     = "formdesk"
	connectTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	var logOut io.Writer = os.Stdout
	if cfg.GelfAddr != "" {
		gw, err := gelf.New(cfg.GelfAddr, serviceName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: GELF init failed: %v\n", err)
		} else {
			defer gw.Close()
			logOut = io.MultiWriter(os.Stdout, gw)
		}
	}
	logging.Setup(cfg.LogLevel, logOut)

	if err := cfg.Validate(); err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	a, err := app.New(connectCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			slog.Warn("closing store", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router.New(a),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreBackend, "uploads", a.Uploads.Dir(), "gelf", cfg.GelfAddr != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
