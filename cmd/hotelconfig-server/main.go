package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-hotelconfig/internal/config"
	"github.com/goliatone/go-hotelconfig/pkg/generator"
	"github.com/goliatone/go-hotelconfig/pkg/model"
	"github.com/goliatone/go-hotelconfig/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelconfig/pkg/seed"
	"github.com/goliatone/go-hotelconfig/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fs := flag.NewFlagSet("hotelconfig-server", flag.ExitOnError)
	templatesDir := fs.String("templates", "", "load page templates from this directory instead of the embedded set")
	cfg, err := config.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("hotelconfig-server: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("hotelconfig-server: logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	handler, err := buildHandler(cfg, *templatesDir, logger)
	if err != nil {
		logger.Fatal("build handler", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildHandler(cfg config.Config, templatesDir string, logger *zap.Logger) (http.Handler, error) {
	rendererOpts := []vanilla.Option{
		vanilla.WithTheme(cfg.Theme, cfg.Variant),
		vanilla.WithLogger(logger),
	}
	if templatesDir != "" {
		rendererOpts = append(rendererOpts, vanilla.WithTemplatesDir(templatesDir))
	}
	renderer, err := vanilla.New(rendererOpts...)
	if err != nil {
		return nil, err
	}

	policy, err := cfg.DuplicatePolicy()
	if err != nil {
		return nil, err
	}

	seedFn, err := seedSource(cfg.Seed)
	if err != nil {
		return nil, err
	}

	return server.New(
		server.WithRenderer(renderer),
		server.WithGenerator(generator.New(generator.WithDuplicatePolicy(policy), generator.WithLogger(logger))),
		server.WithSeed(seedFn),
		server.WithFilename(cfg.Filename),
		server.WithLogger(logger),
	)
}

// seedSource loads the seed file once and hands out a fresh copy per request.
func seedSource(path string) (func() *model.Form, error) {
	if strings.TrimSpace(path) == "" {
		return func() *model.Form { return seed.Default() }, nil
	}
	form, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	return form.Clone, nil
}
