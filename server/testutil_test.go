package server

import (
	"context"
	"sync"
)

// fakeClient is a scripted strudel.Client for handler tests.
type fakeClient struct {
	mu      sync.Mutex
	written []string
	plays   int
	stops   int
	current string

	writeErr error
	playErr  error
	stopErr  error
	readErr  error

	closed bool
}

func (f *fakeClient) WritePattern(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, code)
	f.current = code
	return nil
}

func (f *fakeClient) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return f.playErr
}

func (f *fakeClient) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.stopErr
}

func (f *fakeClient) CurrentPattern(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.current, nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func (f *fakeClient) writtenPatterns() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}
