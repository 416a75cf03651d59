package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzeria/internal/app"
)

// setupLogger настраивает формат и уровень логирования. Логи идут в out, вывод команд в stdout.
func setupLogger(cfg app.Config, out io.Writer) error {
	log.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format %q (use text|json)", cfg.LogFormat)
	}

	level := log.InfoLevel
	if raw := strings.TrimSpace(cfg.LogLevel); raw != "" {
		parsed, err := log.ParseLevel(raw)
		if err != nil {
			return err
		}
		level = parsed
	}
	log.SetLevel(level)
	return nil
}

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := setupLogger(cfg, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if code := app.ExitCode(err); code != 0 {
		log.WithError(err).WithField("args", os.Args[1:]).Debug("command failed")
		_, _ = fmt.Fprintf(os.Stderr, "pizzeria: %v\n", err)
		os.Exit(code)
	}
}
