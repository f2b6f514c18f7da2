package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"expensedesk/internal/api"
	"expensedesk/internal/cli"
	apphttp "expensedesk/internal/http"
	"expensedesk/internal/log"
	"expensedesk/internal/middleware/ratelimit"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()

	logger, logCloser, err := cli.SetupLogger(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logCloser.Close()

	tracerCloser, err := cli.InitTracer(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize tracer", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer tracerCloser.Close()

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to create API client", log.FieldError, err.Error(), "api_base_url", cfg.APIBaseURL)
		os.Exit(1)
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:       cfg.Addr(),
		Currency:   cfg.CurrencySymbol,
		APIBaseURL: client.BaseURL(),
		Logger:     logger,
		RateLimit:  ratelimit.DefaultConfig(),
	}, client)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background(), logger)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expensedesk server",
			"port", cfg.Port, "api_base_url", client.BaseURL(), "config_file", cfg.ConfigFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
