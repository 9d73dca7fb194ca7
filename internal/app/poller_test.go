package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongBaseNotShortened(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

type countingLoader struct {
	mu    sync.Mutex
	calls int
	errs  []error
	ch    chan struct{}
}

func (l *countingLoader) LoadAll(context.Context) error {
	l.mu.Lock()
	var err error
	if l.calls < len(l.errs) {
		err = l.errs[l.calls]
	}
	l.calls++
	l.mu.Unlock()
	l.ch <- struct{}{}
	return err
}

func waitCalls(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for refresh %d of %d", i+1, n)
		}
	}
}

func TestStartRefresher_CallsLoadAllRepeatedly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := &countingLoader{ch: make(chan struct{}, 8)}
	StartRefresher(ctx, loader, 5*time.Millisecond, nil)

	waitCalls(t, loader.ch, 3)
}

func TestStartRefresher_LogsFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, nil))

	loader := &countingLoader{ch: make(chan struct{}, 8), errs: []error{errors.New("offline")}}
	StartRefresher(ctx, loader, time.Millisecond, logger)

	waitCalls(t, loader.ch, 2)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		out := buf.String()
		mu.Unlock()
		if strings.Contains(out, "auto refresh recovered") {
			if !strings.Contains(out, "auto refresh failed") || !strings.Contains(out, "offline") {
				t.Fatalf("missing failure record:\n%s", out)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("recovery was never logged")
}

func TestStartRefresher_DisabledForZeroInterval(t *testing.T) {
	loader := &countingLoader{ch: make(chan struct{}, 1)}
	StartRefresher(context.Background(), loader, 0, nil)

	select {
	case <-loader.ch:
		t.Fatal("LoadAll called with refresh disabled")
	case <-time.After(30 * time.Millisecond):
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
