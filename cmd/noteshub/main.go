package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/sigroup/noteshub"
	"github.com/sigroup/noteshub/logfields"
	"github.com/sigroup/noteshub/metrics"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path (YAML or TOML).  Defaults are used if it does not exist." default:"noteshub.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	ContentRoot string `help:"Folder with the notes.  Overrides content_root in the config."`
	OutputDir   string `short:"o" help:"Where the site is written.  Overrides output_dir in the config."`
	Converter   string `help:"Document converter: auto, none or an executable.  Overrides converter.command in the config."`
	Concurrency int    `help:"Files processed in parallel.  Overrides concurrency in the config."`

	Build struct{} `cmd:"" default:"1" help:"Build the notes hub once"`

	Serve struct {
		Addr  string `short:"a" help:"Address to serve the generated site on" default:":8080"`
		Watch bool   `short:"w" help:"Rebuild when the content changes"`
	} `cmd:"" help:"Build and preview the notes hub locally"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("noteshub"),
		kong.Description("Static site generator for a notes hub"))

	cfg, err := noteshub.LoadConfigIfExists(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", logfields.Error(err))
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel, CLI.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "build":
		if err := runBuild(ctx, cfg); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "serve":
		if err := runServe(ctx, cfg); err != nil {
			slog.Error("Serve failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

func applyOverrides(cfg *noteshub.Config) {
	if CLI.ContentRoot != "" {
		cfg.ContentRoot = CLI.ContentRoot
	}
	if CLI.OutputDir != "" {
		cfg.OutputDir = CLI.OutputDir
	}
	if CLI.Converter != "" {
		cfg.Converter.Command = CLI.Converter
	}
	if CLI.Concurrency > 0 {
		cfg.Concurrency = CLI.Concurrency
	}
}

func setupLogging(level string, verbose bool) {
	logLevel := slog.LevelInfo
	if level != "" {
		if err := logLevel.UnmarshalText([]byte(level)); err != nil {
			logLevel = slog.LevelInfo
		}
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func runBuild(ctx context.Context, cfg *noteshub.Config) error {
	site := cfg.NewSite().Init()
	result, err := site.Build(ctx)
	if err != nil {
		return err
	}
	noteshub.PrintSummary(os.Stdout, result)
	return nil
}

func runServe(ctx context.Context, cfg *noteshub.Config) error {
	reg := prom.NewRegistry()
	site := cfg.NewSite()
	site.Recorder = metrics.NewPrometheusRecorder(reg)
	site.Init()

	result, err := site.Build(ctx)
	if err != nil {
		return err
	}
	noteshub.PrintSummary(os.Stdout, result)

	if CLI.Serve.Watch {
		err := site.StartWatching(ctx, func(result *noteshub.BuildResult, err error) {
			if err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				return
			}
			noteshub.PrintSummary(os.Stdout, result)
		})
		if err != nil {
			return err
		}
		defer site.StopWatching()
	}

	router := mux.NewRouter()
	router.Handle("/metrics", metrics.HTTPHandler(reg))
	router.PathPrefix("/").Handler(site)

	srv := &http.Server{
		Handler:           withLogger(router),
		Addr:              CLI.Serve.Addr,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving site", "addr", CLI.Serve.Addr, logfields.Path(site.OutputDir))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func withLogger(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// pass the handler to httpsnoop to get http status and latency
		m := httpsnoop.CaptureMetrics(handler, writer, request)
		slog.Info("http",
			logfields.Status(m.Code),
			logfields.Method(request.Method),
			logfields.URL(request.URL.Path),
			logfields.DurationMS(float64(m.Duration.Microseconds())/1000))
	})
}
