package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"expensedesk/internal/api"
	"expensedesk/internal/cli"
	"expensedesk/internal/config"
	"expensedesk/internal/log"
	"expensedesk/internal/tui"
)

const defaultLogFile = "expensedesk-tui.log"

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()

	// The terminal belongs to the UI; logs go to a file.
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	logger, logCloser, err := cli.SetupLogger(cfg, io.Discard)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Terminal UI exited with error", log.FieldError, err.Error())
		fmt.Fprintln(os.Stderr, err)
		_ = logCloser.Close()
		os.Exit(1)
	}
	_ = logCloser.Close()
}

func run(cfg *config.Config, logger *log.Logger) error {
	tracerCloser, err := cli.InitTracer(cfg, logger)
	if err != nil {
		return err
	}
	defer tracerCloser.Close()

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := cli.SignalContext(context.Background(), logger)
	defer stop()

	app := tui.New(ctx, client, tui.Config{
		Currency: cfg.CurrencySymbol,
		Logger:   logger,
	})

	logger.Info("Starting expensedesk terminal UI", "api_base_url", client.BaseURL())
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("Terminal UI stopped")
	return nil
}
