package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agriloop/app"
	"agriloop/config"
	"agriloop/entities"
	"agriloop/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agriloop",
		Short:         "AgriLoop farm platform server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, log *zap.Logger) error {
				return serve(ctx, a, log)
			})
		},
	}
	root.RunE = serveCmd.RunE

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the admin workbook of users, farms and partners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, log *zap.Logger) error {
				return export(ctx, a, out, log)
			})
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "agriloop.xlsx", "output workbook path")

	root.AddCommand(serveCmd, exportCmd)
	return root
}

func withApp(cmd *cobra.Command, run func(context.Context, *app.App, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer func() { _ = log.Sync() }()

	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Warn("unknown timezone, keeping local", zap.String("tz", cfg.Timezone), zap.Error(err))
	} else {
		time.Local = loc
	}
	log.Info("config loaded", zap.Any("config", cfg.Redacted()))

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	if err := run(ctx, a, log); err != nil {
		log.Error("exited with error", zap.Error(err))
		return err
	}
	return nil
}

// serve runs the API until ctx is cancelled and then drains in-flight requests.
func serve(ctx context.Context, a *app.App, log *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("port", a.Config.Port))
		if err := a.Echo.Start(":" + a.Config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return a.Shutdown(sctx)
	})
	return g.Wait()
}

func export(ctx context.Context, a *app.App, path string, log *zap.Logger) error {
	defer func() { _ = a.Shutdown(context.Background()) }()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	admin := entities.Principal{Username: app.AdminUsername, Role: entities.RoleAdmin}
	if err := a.Dashboard.ExportWorkbook(ctx, admin, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("workbook written", zap.String("path", path))
	return nil
}
