package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newstv/internal/api"
	"newstv/internal/broadcast"
	"newstv/internal/controller"
	"newstv/internal/publisher"
	"newstv/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the headline controller over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.LogLevel, os.Stdout)

			provider, err := newProvider(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctl := controller.New(provider, logger, cfg.Headlines)
			var wg sync.WaitGroup

			if cfg.RabbitMQ.Enabled {
				pub, err := publisher.NewRabbitMQ(publisher.Config{
					URL:        cfg.RabbitMQ.URL,
					Exchange:   cfg.RabbitMQ.Exchange,
					RoutingKey: cfg.RabbitMQ.RoutingKey,
					QueueName:  cfg.RabbitMQ.QueueName,
				}, logger)
				if err != nil {
					ctl.Close()
					return err
				}
				defer pub.Close()

				b := broadcast.New(ctl, pub, logger)
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = b.Run(ctx)
				}()
			}

			if cfg.Headlines.RefreshInterval > 0 {
				sched := scheduler.NewScheduler(ctl, cfg.Headlines.RefreshInterval, logger)
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = sched.Start(ctx)
				}()
			}

			srv := &http.Server{
				Addr:         cfg.HTTP.Addr,
				Handler:      api.NewServer(api.NewHandler(ctl, logger), logger),
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("http server listening",
					"addr", cfg.HTTP.Addr,
					"source", cfg.Source.Kind,
					"country", ctl.Filter().Country,
					"category", ctl.Filter().Category,
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case <-ctx.Done():
				logger.Info("received shutdown signal")
			case err = <-serveErr:
				logger.Error("http server failed", "error", err)
			}
			stop()

			// Closing the controller ends open state streams so Shutdown can drain.
			ctl.Close()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown", "error", err)
			}

			wg.Wait()
			logger.Info("stopped")
			return err
		},
	}
}
