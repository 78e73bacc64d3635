package app

import (
	"context"
	"testing"
	"time"

	"github.com/tempohq/daybrief/internal/state"
)

func TestStartPoller_LoadsImmediatelyWithoutTick(t *testing.T) {
	f := newFakeFetcher()
	loader, store, _, _ := newLoaderForTest(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// An hour-long interval: only the immediate initial load can populate
	// the store within the deadline.
	StartPoller(ctx, loader, time.Hour, func() string { return "2026-08-28" })

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().Briefing == nil {
		if time.Now().After(deadline) {
			t.Fatal("initial load never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartPoller_CachedDataLandsWhileFetchStalls(t *testing.T) {
	f := newFakeFetcher()
	loader, _, c, _ := newLoaderForTest(t, f)

	// Seed the on-disk cache, then cold-start against a fresh store with
	// the network stalled.
	if err := loader.Load(context.Background(), "2026-08-28"); err != nil {
		t.Fatalf("seed Load returned error: %v", err)
	}

	gate := make(chan struct{})
	f.mu.Lock()
	f.slow["2026-08-28"] = gate
	f.slow["2026-08-24"] = gate // the week section's Monday key
	f.mu.Unlock()
	defer close(gate)

	store := &state.Store{}
	cold := NewLoader(f, c, store)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	StartPoller(ctx, cold, time.Hour, func() string { return "2026-08-28" })

	// The cached snapshot must publish while every fetch is still blocked.
	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().HasData() {
		if time.Now().After(deadline) {
			t.Fatal("cached snapshot never published while the fetch stalled")
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := store.Snapshot()
	if !snap.FromCache {
		t.Fatal("cold-start publish should be marked FromCache")
	}
	if snap.Briefing == nil || snap.Briefing.Headline != "fresh 2026-08-28" {
		t.Fatalf("briefing = %#v", snap.Briefing)
	}
}

func TestStartPoller_RefreshesSelectedDate(t *testing.T) {
	f := newFakeFetcher()
	loader, store, _, _ := newLoaderForTest(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	StartPoller(ctx, loader, 10*time.Millisecond, func() string { return "2026-08-28" })

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().Briefing == nil {
		if time.Now().After(deadline) {
			t.Fatal("poller never populated the store")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := store.Snapshot().Briefing.Headline; got != "fresh 2026-08-28" {
		t.Fatalf("headline = %q", got)
	}

	// Cancellation stops further fetches.
	cancel()
	time.Sleep(20 * time.Millisecond)
	before := f.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if f.calls.Load() != before {
		t.Fatal("poller kept fetching after cancellation")
	}
}
