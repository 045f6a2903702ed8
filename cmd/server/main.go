package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"

	"github.com/ymori/labnote/internal/archive"
	"github.com/ymori/labnote/internal/config"
	"github.com/ymori/labnote/internal/domain/entry"
	"github.com/ymori/labnote/internal/imagestore"
	"github.com/ymori/labnote/internal/jsonstore"
	"github.com/ymori/labnote/internal/render"
	"github.com/ymori/labnote/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	images, err := imagestore.New(cfg.Storage.ImagesDir, logger)
	if err != nil {
		logger.Error("failed to prepare image store", "error", err)
		os.Exit(1)
	}

	store, err := jsonstore.New(cfg.Storage.DataDir, archive.NewRenderer(images), logger)
	if err != nil {
		logger.Error("failed to prepare data store", "error", err)
		os.Exit(1)
	}

	entries := entry.NewService(store, logger)
	entries.Load(context.Background())

	renderer := render.NewRenderer(images, logger)
	router := transport.NewRouter(entries, images, renderer, store.ArchivePath(), logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	if cfg.Server.OpenBrowser {
		go func() {
			time.Sleep(2 * time.Second)
			url := fmt.Sprintf("http://%s/", addr)
			logger.Info("opening browser", "url", url)
			if err := browser.OpenURL(url); err != nil {
				logger.Warn("failed to open browser", "error", err)
			}
		}()
	}

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
