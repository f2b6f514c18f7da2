// Package cli provides common CLI initialization utilities shared by
// cmd/expensedesk and cmd/expensedesk-tui.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"expensedesk/internal/config"
	"expensedesk/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging for cfg and sets it as the
// default logger. Output goes to cfg.LogFile when set, otherwise to
// fallback. The returned closer releases the log file.
func SetupLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
		}
		out, closer = f, f
	}
	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Output: out,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure. Problems are
// written to stderr since no logger exists yet.
func LoadAndValidateConfig() *config.Config {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitTracer installs the global tracer. With tracing disabled the
// opentracing no-op tracer stays in place. Otherwise a Jaeger tracer is
// built from the JAEGER_* environment, named after cfg.ServiceName unless
// JAEGER_SERVICE_NAME says otherwise.
func InitTracer(cfg *config.Config, logger *log.Logger) (io.Closer, error) {
	if !cfg.TracingEnabled {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		return nopCloser{}, nil
	}

	jcfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("read jaeger environment: %w", err)
	}
	if jcfg.ServiceName == "" {
		jcfg.ServiceName = cfg.ServiceName
	}
	if jcfg.Sampler.Type == "" {
		jcfg.Sampler.Type = "const"
		jcfg.Sampler.Param = 1
	}

	tracer, closer, err := jcfg.NewTracer()
	if err != nil {
		return nil, fmt.Errorf("create jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)
	logger.WithComponent(log.ComponentTrace).Info("Tracing enabled",
		"service", jcfg.ServiceName, "sampler", jcfg.Sampler.Type)
	return closer, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. The
// received signal is logged. Call stop to release the signal handler.
func SignalContext(parent context.Context, logger *log.Logger) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
