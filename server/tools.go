package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/williamzujkowski/strudel-mcp-server-sub002/pattern"
	"github.com/williamzujkowski/strudel-mcp-server-sub002/resilience"
)

// ErrNoSession reports a live-session tool call with no browser
// attached.
var ErrNoSession = errors.New("server: no live Strudel session attached")

type patternInput struct {
	Pattern string `json:"pattern" jsonschema:"the Strudel pattern text"`
}

type emptyInput struct{}

type writeOutput struct {
	// Written is true when the pattern passed validation and reached
	// the editor.
	Written    bool           `json:"written"`
	Validation pattern.Result `json:"validation"`
}

type playOutput struct {
	Playing bool `json:"playing"`
}

type stopOutput struct {
	Stopped bool `json:"stopped"`
}

type getPatternOutput struct {
	Pattern string `json:"pattern"`
}

type errorStatsOutput struct {
	// Operations maps operation names to their recent failure stats.
	// Operations with no failures inside the window are absent.
	Operations map[string]resilience.Stat `json:"operations"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "validate_pattern",
		Description: "Validate Strudel pattern text: bracket and quote balance, safety limits, and vocabulary heuristics. Returns errors, warnings, and suggestions.",
	}, s.handleValidatePattern)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_pattern",
		Description: "Analyze Strudel pattern text structurally: BPM, complexity score, events per cycle, and functions used.",
	}, s.handleAnalyzePattern)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "auto_fix",
		Description: "Apply conservative automatic fixes to Strudel pattern text: clamp excessive gain and quote bare mini-notation arguments.",
	}, s.handleAutoFix)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "write_pattern",
		Description: "Validate pattern text and, when it has no errors, write it into the live REPL editor without starting playback.",
	}, s.handleWritePattern)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "play",
		Description: "Evaluate the live REPL's current editor buffer, starting or updating playback.",
	}, s.handlePlay)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "stop",
		Description: "Stop playback in the live REPL. The editor buffer is left intact.",
	}, s.handleStop)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_pattern",
		Description: "Read the live REPL editor's current contents.",
	}, s.handleGetPattern)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "error_stats",
		Description: "Report recent live-session operation failures inside the trailing window.",
	}, s.handleErrorStats)
}

func (s *Server) handleValidatePattern(ctx context.Context, req *mcp.CallToolRequest, in patternInput) (*mcp.CallToolResult, pattern.Result, error) {
	res := pattern.Validate(in.Pattern)
	s.logf("validate_pattern: valid=%v errors=%d warnings=%d", res.Valid, len(res.Errors), len(res.Warnings))
	return nil, res, nil
}

func (s *Server) handleAnalyzePattern(ctx context.Context, req *mcp.CallToolRequest, in patternInput) (*mcp.CallToolResult, pattern.Metadata, error) {
	meta := pattern.Analyze(in.Pattern)
	s.logf("analyze_pattern: complexity=%.2f events=%d", meta.Complexity, meta.EventsPerCycle)
	return nil, meta, nil
}

func (s *Server) handleAutoFix(ctx context.Context, req *mcp.CallToolRequest, in patternInput) (*mcp.CallToolResult, pattern.FixResult, error) {
	fixed := pattern.AutoFix(in.Pattern)
	s.logf("auto_fix: %d fixes", len(fixed.Fixes))
	return nil, fixed, nil
}

func (s *Server) handleWritePattern(ctx context.Context, req *mcp.CallToolRequest, in patternInput) (*mcp.CallToolResult, writeOutput, error) {
	res := pattern.Validate(in.Pattern)
	if !res.Valid {
		s.logf("write_pattern: refused, %d validation errors", len(res.Errors))
		return nil, writeOutput{Written: false, Validation: res}, nil
	}
	if s.client == nil {
		return nil, writeOutput{}, ErrNoSession
	}
	_, err := s.guarded(ctx, "write_pattern", func(ctx context.Context) (any, error) {
		return nil, s.client.WritePattern(ctx, in.Pattern)
	})
	if err != nil {
		return nil, writeOutput{}, fmt.Errorf("write_pattern: %w", err)
	}
	return nil, writeOutput{Written: true, Validation: res}, nil
}

func (s *Server) handlePlay(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, playOutput, error) {
	if s.client == nil {
		return nil, playOutput{}, ErrNoSession
	}
	_, err := s.guarded(ctx, "play", func(ctx context.Context) (any, error) {
		return nil, s.client.Play(ctx)
	})
	if err != nil {
		return nil, playOutput{}, fmt.Errorf("play: %w", err)
	}
	return nil, playOutput{Playing: true}, nil
}

func (s *Server) handleStop(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, stopOutput, error) {
	if s.client == nil {
		return nil, stopOutput{}, ErrNoSession
	}
	_, err := s.guarded(ctx, "stop", func(ctx context.Context) (any, error) {
		return nil, s.client.Stop(ctx)
	})
	if err != nil {
		return nil, stopOutput{}, fmt.Errorf("stop: %w", err)
	}
	return nil, stopOutput{Stopped: true}, nil
}

func (s *Server) handleGetPattern(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, getPatternOutput, error) {
	if s.client == nil {
		return nil, getPatternOutput{}, ErrNoSession
	}
	value, err := s.guarded(ctx, "get_pattern", func(ctx context.Context) (any, error) {
		return s.client.CurrentPattern(ctx)
	})
	if err != nil {
		return nil, getPatternOutput{}, fmt.Errorf("get_pattern: %w", err)
	}
	code, _ := value.(string)
	return nil, getPatternOutput{Pattern: code}, nil
}

func (s *Server) handleErrorStats(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, errorStatsOutput, error) {
	return nil, errorStatsOutput{Operations: s.exec.ErrorStats()}, nil
}
