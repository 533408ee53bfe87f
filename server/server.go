package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/williamzujkowski/strudel-mcp-server-sub002/resilience"
	"github.com/williamzujkowski/strudel-mcp-server-sub002/strudel"
)

const serverInstructions = `Validate, analyze, and auto-fix Strudel patterns, and drive a live
Strudel REPL. validate_pattern, analyze_pattern, and auto_fix work on
pattern text alone. write_pattern, play, stop, and get_pattern need a
live browser session and refuse patterns that fail validation.
error_stats reports recent live-session failures.`

// Server hosts the MCP tool surface.
type Server struct {
	cfg      Config
	client   strudel.Client
	exec     *resilience.Executor
	strategy resilience.Strategy
	logger   Logger
	runID    string
	mcp      *mcp.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithClient attaches a live REPL session. Without one the playback
// tools report that no session is available.
func WithClient(c strudel.Client) Option {
	return func(s *Server) { s.client = c }
}

// WithLogger attaches a logger for tool-level diagnostics.
func WithLogger(l Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithExecutor supplies a preconfigured resilience executor, mainly
// for sharing a failure history across servers or injecting a test
// clock.
func WithExecutor(e *resilience.Executor) Option {
	return func(s *Server) {
		if e != nil {
			s.exec = e
		}
	}
}

// New builds a Server from cfg. The zero Config works; defaults
// apply.
func New(cfg Config, opts ...Option) (*Server, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, runID: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	if s.exec == nil {
		var execOpts []resilience.ExecutorOption
		if s.logger != nil {
			execOpts = append(execOpts, resilience.WithLogger(s.logger))
		}
		s.exec = resilience.NewExecutor(execOpts...)
	}
	s.strategy = resilience.Strategy{
		MaxRetries:         cfg.MaxRetries,
		RetryDelay:         cfg.RetryDelay.Duration,
		ExponentialBackoff: cfg.ExponentialBackoff,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: cfg.Name, Version: cfg.Version},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	s.registerTools()
	s.logf("server %s %s ready, run id %s", cfg.Name, cfg.Version, s.runID)
	return s, nil
}

// RunID returns the correlation id for this server instance.
func (s *Server) RunID() string { return s.runID }

// Run serves MCP over stdio until ctx ends or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the live session, if any.
func (s *Server) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Logf(format, args...)
	}
}

// guarded runs a live-session operation with per-attempt timeout,
// retry, and the circuit breaker.
func (s *Server) guarded(ctx context.Context, name string, op resilience.Operation) (any, error) {
	bounded := func(ctx context.Context) (any, error) {
		return s.exec.ExecuteWithTimeout(ctx, op, s.cfg.OperationTimeout.Duration, name)
	}
	return s.exec.ExecuteWithBreaker(ctx, bounded, name, s.strategy, s.cfg.BreakerThreshold)
}
