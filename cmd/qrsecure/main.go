package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"qrsecure/internal/config"
	"qrsecure/internal/encode"
	"qrsecure/internal/forms"
	"qrsecure/internal/history"
	filestore "qrsecure/internal/history/file"
	mysqlstore "qrsecure/internal/history/mysql"
	"qrsecure/internal/overflow"
	"qrsecure/internal/service"
	"qrsecure/internal/service/report"
	"qrsecure/internal/summarize"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	repo, err := historyRepo(cfg)
	if err != nil {
		log.Error("failed to open history store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var summarizer overflow.Summarizer = summarize.Unconfigured{}
	if cfg.GenAIKey != "" {
		client, err := summarize.New(context.Background(), cfg.GenAIKey, cfg.GenAIModel)
		if err != nil {
			log.Error("failed to create summarizer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		summarizer = client
	} else {
		log.Warn("GENAI_API_KEY not set, oversized submissions cannot be summarized")
	}

	resolver := overflow.New(cfg.OverflowLimit, summarizer)
	encoder := encode.New(cfg.BaseURL, cfg.QRSize, cfg.QRLevel)
	generator := service.NewGenerator(resolver, encoder, repo)

	registry := forms.NewRegistry()
	workspace := forms.NewWorkspace(registry)
	reportSvc := report.New(repo)

	log.Info("server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, registry, workspace, generator, repo, reportSvc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func historyRepo(cfg *config.Config) (history.Repository, error) {
	if cfg.HistoryBackend == "mysql" {
		return mysqlstore.New(cfg.MySQLDSN, cfg.HistoryLimit)
	}
	return filestore.New(cfg.HistoryPath, cfg.HistoryLimit), nil
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch env {
	case envDev:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
