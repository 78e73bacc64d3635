package ui

import (
	"testing"

	"github.com/tempohq/daybrief/internal/tempo"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("bogus"); got != "Nightfox" {
		t.Fatalf("NextTheme(bogus) = %q, want Nightfox", got)
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("not-a-theme"); got.Name != "Nightfox" {
		t.Fatalf("GetTheme(not-a-theme).Name = %q, want Nightfox", got.Name)
	}
	if got := GetTheme("Kanagawa"); got.Name != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa).Name = %q, want Kanagawa", got.Name)
	}
}

func TestBadgeStyleUnknownColorUsesMuted(t *testing.T) {
	th := GetTheme("Nightfox")
	s := th.Styles()

	known := s.BadgeStyle(tempo.Badge{Color: "danger"})
	if known.GetForeground() != s.DangerText.GetForeground() {
		t.Fatalf("danger badge color = %v, want %v",
			known.GetForeground(), s.DangerText.GetForeground())
	}
	if !known.GetBold() {
		t.Fatalf("danger badge should be bold")
	}

	unknown := s.BadgeStyle(tempo.Badge{Color: "chartreuse"})
	muted := s.MutedText
	if unknown.GetForeground() != muted.GetForeground() {
		t.Fatalf("unknown badge color = %v, want muted %v",
			unknown.GetForeground(), muted.GetForeground())
	}
}

func TestViewForKey(t *testing.T) {
	if got := ViewForKey("tasks"); got != ViewTasks {
		t.Fatalf("ViewForKey(tasks) = %v, want ViewTasks", got)
	}
	if got := ViewForKey(""); got != ViewBriefing {
		t.Fatalf("ViewForKey(empty) = %v, want ViewBriefing", got)
	}
	if got := ViewForKey("nonsense"); got != ViewBriefing {
		t.Fatalf("ViewForKey(nonsense) = %v, want ViewBriefing", got)
	}
	for _, v := range viewOrder {
		if got := ViewForKey(v.Key()); got != v {
			t.Fatalf("ViewForKey(%q) = %v, want %v", v.Key(), got, v)
		}
	}
}
