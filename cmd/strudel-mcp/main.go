// Command strudel-mcp serves Strudel pattern tools over MCP stdio.
//
// It validates, analyzes, and auto-fixes pattern text locally, and can
// drive a live Strudel REPL tab when pointed at its DevTools websocket
// URL (config strudel_ws_url or STRUDEL_MCP_WS_URL).
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/williamzujkowski/strudel-mcp-server-sub002/server"
	"github.com/williamzujkowski/strudel-mcp-server-sub002/strudel"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	// Stdout carries the MCP protocol; all logging goes to stderr.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{server.WithLogger(logrusAdapter{log})}
	if cfg.StrudelWSURL != "" {
		client, err := strudel.Dial(ctx, cfg.StrudelWSURL)
		if err != nil {
			log.Fatalf("connect to Strudel tab: %v", err)
		}
		opts = append(opts, server.WithClient(client))
		log.WithField("url", cfg.StrudelWSURL).Info("live session attached")
	} else {
		log.Info("no strudel_ws_url configured, playback tools disabled")
	}

	srv, err := server.New(cfg, opts...)
	if err != nil {
		log.Fatalf("start server: %v", err)
	}
	defer srv.Close()

	log.WithFields(logrus.Fields{
		"name":   cfg.Name,
		"run_id": srv.RunID(),
	}).Info("serving MCP over stdio")

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("serve: %v", err)
	}
}

// logrusAdapter satisfies server.Logger with a logrus backend.
type logrusAdapter struct {
	log *logrus.Logger
}

func (a logrusAdapter) Logf(format string, args ...any) {
	a.log.Debugf(format, args...)
}
