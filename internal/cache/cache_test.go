package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCache_PutGetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, _, ok := c.Get("briefing", "2026-08-30"); ok {
		t.Fatal("empty cache should miss")
	}

	payload := []byte(`{"headline": "Easy day"}`)
	if err := c.Put("briefing", "2026-08-30", payload); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, storedAt, ok := c.Get("briefing", "2026-08-30")
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if string(got) != string(payload) {
		t.Fatalf("Get = %s, want %s", got, payload)
	}
	if storedAt.IsZero() {
		t.Fatal("storedAt should be set")
	}

	// Returned bytes must be independent of the stored entry.
	got[0] = 'X'
	again, _, _ := c.Get("briefing", "2026-08-30")
	if string(again) != string(payload) {
		t.Fatalf("stored entry mutated through returned slice: %s", again)
	}
}

func TestCache_PutOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := c.Put("tasks", "2026-08-30", []byte(`["old"]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := c.Put("tasks", "2026-08-30", []byte(`["new"]`)); err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}

	got, _, ok := c.Get("tasks", "2026-08-30")
	if !ok || string(got) != `["new"]` {
		t.Fatalf("Get = %s ok=%v, want new value", got, ok)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("cache dir has %d files, want exactly 1 (no temp leftovers)", len(entries))
	}
}

func TestCache_KeysAreIsolatedByEndpointAndDate(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c.Put("briefing", "2026-08-29", []byte("a")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := c.Put("briefing", "2026-08-30", []byte("b")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := c.Put("health", "2026-08-30", []byte("c")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	for _, tc := range []struct{ endpoint, date, want string }{
		{"briefing", "2026-08-29", "a"},
		{"briefing", "2026-08-30", "b"},
		{"health", "2026-08-30", "c"},
	} {
		got, _, ok := c.Get(tc.endpoint, tc.date)
		if !ok || string(got) != tc.want {
			t.Fatalf("Get(%s,%s) = %s ok=%v, want %s", tc.endpoint, tc.date, got, ok, tc.want)
		}
	}
}

func TestCache_DiskSurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()
	c1, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c1.Put("week", "2026-08-24", []byte("persisted")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	c2, err := New(dir)
	if err != nil {
		t.Fatalf("second New returned error: %v", err)
	}
	got, _, ok := c2.Get("week", "2026-08-24")
	if !ok || string(got) != "persisted" {
		t.Fatalf("cold Get = %s ok=%v, want persisted", got, ok)
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c.Put("briefing", "2026-08-30", []byte("x")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	// An unrelated file must survive Clear.
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, _, ok := c.Get("briefing", "2026-08-30"); ok {
		t.Fatal("Get hit after Clear")
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("unrelated file removed: %v", err)
	}
}
