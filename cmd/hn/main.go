package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/abelbrown/hncli/internal/browser"
	"github.com/abelbrown/hncli/internal/cache"
	"github.com/abelbrown/hncli/internal/config"
	"github.com/abelbrown/hncli/internal/fetch"
	"github.com/abelbrown/hncli/internal/logging"
	"github.com/abelbrown/hncli/internal/ui"
)

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "hn: %v\n", err)
		os.Exit(1)
	}
}

func rootApp() *cli.App {
	return &cli.App{
		Name:  "hn",
		Usage: "Browse Hacker News top stories in the terminal",
		Description: `Shows the ranked Hacker News story list ten at a time.

		j/k move, h/l change page, enter opens the story, c opens the
		comments, q quits.

		Flags can generally be set via environment variables, e.g.:

		--list => HN_LIST=beststories
		--log-dir => HN_LOG_DIR=/var/tmp`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   config.ConfigPath(),
				Usage:   "TOML config file",
				EnvVars: []string{"HN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "list",
				Usage:   "ranked list to browse (topstories, newstories, beststories, askstories, showstories, jobstories)",
				EnvVars: []string{"HN_LIST"},
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "Firebase REST root",
				EnvVars: []string{"HN_API_URL"},
			},
			&cli.StringFlag{
				Name:    "log-dir",
				Usage:   "directory for the daily diagnostic log",
				EnvVars: []string{"HN_LOG_DIR"},
			},
			&cli.StringFlag{
				Name:    "browser",
				Usage:   "command used to open links",
				EnvVars: []string{"BROWSER"},
			},
			&cli.StringFlag{
				Name:    "cache",
				Usage:   "item cache backend (memory, sqlite)",
				EnvVars: []string{"HN_CACHE"},
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "serve prometheus metrics on this address, e.g. 127.0.0.1:9100",
				EnvVars: []string{"HN_METRICS_ADDR"},
			},
		},
		Commands: []*cli.Command{
			configCmd(),
		},
		Action: run,
	}
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Write the effective configuration to the config file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing file",
			},
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.String("config")
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintln(ctx.App.Writer, "wrote", path)
			return nil
		},
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet("list") {
		cfg.List = ctx.String("list")
	}
	if ctx.IsSet("api") {
		cfg.APIURL = ctx.String("api")
	}
	if ctx.IsSet("log-dir") {
		cfg.Log.Dir = ctx.String("log-dir")
	}
	if ctx.IsSet("browser") {
		cfg.Browser = ctx.String("browser")
	}
	if ctx.IsSet("cache") {
		cfg.Cache.Backend = ctx.String("cache")
	}
	if ctx.IsSet("metrics-addr") {
		cfg.MetricsAddr = ctx.String("metrics-addr")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cliCtx *cli.Context) error {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}

	// The browser still works without a log file.
	if err := logging.Init(cfg.LogOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "hn: logging disabled: %v\n", err)
	}
	defer logging.Close()
	logging.Info("starting", "list", cfg.List, "api", cfg.APIURL, "cache", cfg.Cache.Backend)

	ctx, cancel := context.WithCancel(cliCtx.Context)
	defer cancel()

	c, err := cache.New(cfg.Cache.Backend)
	if err != nil {
		return err
	}
	if closer, ok := c.(io.Closer); ok {
		defer closer.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	gateway := fetch.NewGateway(
		fetch.NewFetcher(cfg.FetchOptions()),
		c,
		cfg.Fetch.MaxConcurrency,
		fetch.NewMetrics(reg),
	)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	cmds := commands{
		ctx:    ctx,
		src:    gateway,
		opener: browser.New(cfg.Browser),
		list:   cfg.List,
	}
	app := ui.NewAppWithConfig(cmds.appConfig(logging.Recent))

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logging.Error("display failed", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Info("exiting", "cached_items", gateway.Cached(), "log_lines_dropped", logging.Dropped())
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logging.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}
