package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"newstv/internal/controller"
	"newstv/internal/present"
	"newstv/internal/scheduler"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show headlines in the terminal and switch filters interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// stdout belongs to the rendered headlines
			logger := setupLogger(cfg.LogLevel, os.Stderr)

			provider, err := newProvider(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctl := controller.New(provider, logger, cfg.Headlines)

			rendered := make(chan struct{})
			go func() {
				defer close(rendered)
				for snap := range ctl.Snapshots(ctx) {
					fmt.Fprintln(os.Stdout)
					if err := present.Render(os.Stdout, snap.Filter, snap.State); err != nil {
						logger.Error("render failed", "error", err)
					}
				}
			}()

			if cfg.Headlines.RefreshInterval > 0 {
				sched := scheduler.NewScheduler(ctl, cfg.Headlines.RefreshInterval, logger)
				go func() { _ = sched.Start(ctx) }()
			}

			quit := make(chan struct{})
			go func() {
				defer close(quit)
				con := &console{remote: ctl, out: os.Stdout}
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					if con.handle(scanner.Text()) {
						return
					}
				}
			}()

			fmt.Fprint(os.Stdout, consoleHelp)

			select {
			case <-ctx.Done():
				logger.Info("received shutdown signal")
			case <-quit:
			}
			stop()

			ctl.Close()
			<-rendered
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the selectable countries and categories",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeCatalog(cmd.OutOrStdout())
		},
	}
}
