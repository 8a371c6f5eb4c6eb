package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":       ModeAll,
		"all":    ModeAll,
		" API ":  ModeAPI,
		"worker": ModeWorker,
	}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q): want %s got %s err=%v", raw, want, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestModeComponents(t *testing.T) {
	cases := []struct {
		mode         Mode
		queueEnabled bool
		http         bool
		worker       bool
	}{
		{ModeAll, false, true, false},
		{ModeAll, true, true, true},
		{ModeAPI, true, true, false},
		{ModeWorker, false, false, true},
	}
	for _, tc := range cases {
		if got := tc.mode.servesHTTP(); got != tc.http {
			t.Fatalf("%s servesHTTP want %v got %v", tc.mode, tc.http, got)
		}
		if got := tc.mode.consumesQueue(tc.queueEnabled); got != tc.worker {
			t.Fatalf("%s queue=%v consumesQueue want %v got %v", tc.mode, tc.queueEnabled, tc.worker, got)
		}
	}
}

func blockingComponent(name string, stopped *atomic.Bool) component {
	return component{name: name, run: func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return nil
	}}
}

func TestRunComponentsCancelsOthersOnFailure(t *testing.T) {
	var stopped atomic.Bool
	boom := errors.New("boom")
	err := runComponents(context.Background(), []component{
		{name: "failing", run: func(context.Context) error { return boom }},
		blockingComponent("blocking", &stopped),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
	if !stopped.Load() {
		t.Fatalf("blocking component should observe cancellation")
	}
}

func TestRunComponentsReturnsNilOnCancel(t *testing.T) {
	var stopped atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runComponents(ctx, []component{blockingComponent("blocking", &stopped)}); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if !stopped.Load() {
		t.Fatalf("component should stop on cancel")
	}
	if err := runComponents(context.Background(), nil); err == nil {
		t.Fatalf("expected error without components")
	}
}

func TestAPIServerStopsOnCancel(t *testing.T) {
	api := newAPIServer("127.0.0.1:0", http.NotFoundHandler(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve should return nil after cancel, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

func TestAPIServerReportsListenError(t *testing.T) {
	api := newAPIServer("256.0.0.1:bad", http.NotFoundHandler(), time.Second)
	if err := api.serve(context.Background()); err == nil {
		t.Fatalf("invalid address should fail")
	}
}
