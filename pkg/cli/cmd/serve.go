package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devantler-tech/tgops/pkg/di"
	"github.com/devantler-tech/tgops/pkg/utils/notify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	metricsAddressFlag = "metrics-address"
	shutdownTimeout    = 10 * time.Second
	readHeaderTimeout  = 5 * time.Second
	limiterEviction    = 10 * time.Minute
)

// NewServeCmd creates the serve command.
func NewServeCmd(runtimeContainer *di.Runtime, extra ...di.Module) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, true)
			if err != nil {
				return err
			}

			modules := append([]di.Module{di.WithConfig(cfg, cmd.ErrOrStderr())}, extra...)

			return di.RunEWithRuntime(runtimeContainer, serve, modules...)(cmd, args)
		},
	}

	cmd.Flags().String(metricsAddressFlag, ":8000", "Address of the Prometheus metrics listener")

	return cmd
}

func serve(cmd *cobra.Command, injector di.Injector) error {
	cfg, err := di.ResolveConfig(injector)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	recorder, err := di.ResolveMetrics(injector)
	if err != nil {
		return err
	}

	limiter, err := di.ResolveLimiter(injector)
	if err != nil {
		return err
	}

	bot, err := di.ResolveBot(injector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	listener, err := net.Listen("tcp", cfg.Metrics.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Metrics.Address, err)
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		// The bot ending for any reason ends the whole process.
		defer stop()

		return bot.Run(groupCtx)
	})

	group.Go(func() error {
		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve metrics: %w", err)
	})

	group.Go(func() error {
		return limiter.Run(groupCtx, limiterEviction)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}

		return nil
	})

	notify.Successf(cmd.OutOrStdout(), "tgops is serving, metrics on %s", listener.Addr())
	logger.WithField("metrics_address", listener.Addr().String()).Info("tgops started")

	err = group.Wait()

	logger.Info("tgops stopped")

	return err
}
