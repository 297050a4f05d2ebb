package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"newstv/internal/config"
	"newstv/internal/controller"
	"newstv/internal/source/newsapi"
	"newstv/internal/source/rss"
)

var (
	configPath string
	country    string
	category   string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newstv",
		Short:        "Top news headlines by country and category",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&country, "country", "", "initial country code (overrides config)")
	root.PersistentFlags().StringVar(&category, "category", "", "initial category (overrides config)")

	root.AddCommand(watchCmd(), serveCmd(), catalogCmd())
	return root
}

// loadConfig reads the config file. A missing default config file is not an
// error; built-in defaults and the environment are used instead.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	if country != "" {
		cfg.Headlines.Country = country
	}
	if category != "" {
		cfg.Headlines.Category = category
	}
	return cfg, nil
}

func newProvider(cfg *config.Config, logger *slog.Logger) (controller.Provider, error) {
	switch cfg.Source.Kind {
	case config.SourceNewsAPI:
		if cfg.Source.NewsAPI.APIKey == "" {
			logger.Warn("newsapi key is not configured, every fetch will fail",
				"hint", "set NEWS_API_KEY or source.newsapi.api_key",
			)
		}
		return newsapi.New(newsapi.Config{
			BaseURL:   cfg.Source.NewsAPI.BaseURL,
			APIKey:    cfg.Source.NewsAPI.APIKey,
			PageSize:  cfg.Source.NewsAPI.PageSize,
			Timeout:   cfg.Source.NewsAPI.Timeout,
			UserAgent: cfg.Source.NewsAPI.UserAgent,
		}, logger), nil
	case config.SourceRSS:
		return rss.New(rss.Config{
			URLTemplate: cfg.Source.RSS.URLTemplate,
			Timeout:     cfg.Source.RSS.Timeout,
			UserAgent:   cfg.Source.RSS.UserAgent,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func setupLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
