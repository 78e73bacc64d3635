package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tempohq/daybrief/internal/tempo"
)

func TestStore_PublishAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Publish(DaySnapshot{
		Date:     "2026-08-30",
		Briefing: &tempo.DailyBriefing{Headline: "Easy day"},
		Tasks:    []tempo.Task{{ID: "t1"}, {ID: "t2"}},
	})

	snap := s.Snapshot()
	if snap.Briefing == nil || snap.Briefing.Headline != "Easy day" {
		t.Fatalf("snapshot briefing = %#v", snap.Briefing)
	}
	if len(snap.Tasks) != 2 || snap.Tasks[0].ID != "t1" {
		t.Fatalf("snapshot tasks = %#v", snap.Tasks)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if !snap.HasData() {
		t.Fatal("HasData = false with a briefing published")
	}

	// Returned snapshot should be independent of the stored one.
	snap.Tasks[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Tasks[0].ID != "t1" {
		t.Fatalf("Snapshot should clone tasks; got %q want t1", snap2.Tasks[0].ID)
	}
}

func TestStore_PublishErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Publish(DaySnapshot{Date: "2026-08-30", Briefing: &tempo.DailyBriefing{Headline: "Cached"}})
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.PublishError(origErr)

	snap := s.Snapshot()
	if snap.Briefing == nil || snap.Briefing.Headline != prev.Briefing.Headline {
		t.Fatalf("briefing changed on error: %#v", snap.Briefing)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatal("Snapshot should clone error instance")
	}
}

func TestStore_OfflineAfterConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline = true with no failures")
	}

	s.PublishError(errors.New("fail 1"))
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline = true after a single failure")
	}

	s.PublishError(errors.New("fail 2"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline = false after two failures")
	}

	// A cache publish keeps the offline marker.
	s.Publish(DaySnapshot{Date: "2026-08-30", FromCache: true})
	if !s.Snapshot().IsOffline() {
		t.Fatal("cache publish should not reset the failure counter")
	}

	// A fresh publish clears it.
	s.Publish(DaySnapshot{Date: "2026-08-30"})
	if s.Snapshot().IsOffline() {
		t.Fatal("fresh publish should reset the failure counter")
	}
	if s.Snapshot().ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", s.Snapshot().ConsecutiveFailures)
	}
}
