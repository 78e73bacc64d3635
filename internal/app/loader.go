package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tempohq/daybrief/internal/cache"
	"github.com/tempohq/daybrief/internal/state"
	"github.com/tempohq/daybrief/internal/tempo"
)

// Fetcher is the slice of the API client the loader needs.
type Fetcher interface {
	FetchRaw(ctx context.Context, section tempo.Section, date string) ([]byte, error)
}

// Loader implements the cache-then-network flow for one selected date:
// publish the last cached snapshot immediately, revalidate over the network,
// publish fresh data on success, and keep whatever is published on failure.
//
// Two guards cover the races the flow invites: an in-flight flag stops a
// re-entrant load of the same date from spawning a second fetch, and an
// atomic generation counter makes completions for a superseded date discard
// their result instead of overwriting fresher state.
type Loader struct {
	client Fetcher
	cache  *cache.Cache
	store  *state.Store

	gen      atomic.Uint64
	mu       sync.Mutex
	inflight string

	// pubMu serializes the generation check with the store write so a
	// superseded load cannot publish after its replacement already has.
	pubMu sync.Mutex
}

// NewLoader wires a loader from its dependencies.
func NewLoader(client Fetcher, c *cache.Cache, store *state.Store) *Loader {
	return &Loader{client: client, cache: c, store: store}
}

// Load runs the cache-then-network flow for a YYYY-MM-DD date. It blocks
// until the network phase finishes; callers run it off the UI loop. The
// returned error reports the fetch outcome. A stale (superseded) load
// returns nil because its discard is intentional.
func (l *Loader) Load(ctx context.Context, date string) error {
	l.mu.Lock()
	if l.inflight == date {
		l.mu.Unlock()
		return nil
	}
	l.inflight = date
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		if l.inflight == date {
			l.inflight = ""
		}
		l.mu.Unlock()
	}()

	gen := l.gen.Add(1)

	if cached := l.readCached(date); len(cached) > 0 {
		if snap, err := decodeDay(date, cached, false); err == nil && snap.HasData() {
			snap.FromCache = true
			l.publishCurrent(gen, func() { l.store.Publish(snap) })
		}
	}

	raws, err := l.fetchAll(ctx, date)
	if err != nil {
		l.publishCurrent(gen, func() { l.store.PublishError(err) })
		return err
	}

	snap, err := decodeDay(date, raws, true)
	if err != nil {
		// Corrupt payload counts as a fetch failure; cached data stays up.
		l.publishCurrent(gen, func() { l.store.PublishError(err) })
		return err
	}

	if !l.publishCurrent(gen, func() { l.store.Publish(snap) }) {
		return nil
	}
	l.writeCached(date, raws)
	return nil
}

// publishCurrent runs publish only while gen is still the newest load. The
// check and the write share one critical section; without it a superseded
// load could pass the check and then publish after the newer load did.
func (l *Loader) publishCurrent(gen uint64, publish func()) bool {
	l.pubMu.Lock()
	defer l.pubMu.Unlock()
	if l.gen.Load() != gen {
		return false
	}
	publish()
	return true
}

func (l *Loader) fetchAll(ctx context.Context, date string) (map[tempo.Section][]byte, error) {
	raws := make(map[tempo.Section][]byte, len(tempo.Sections()))
	var mu sync.Mutex
	eg, gctx := errgroup.WithContext(ctx)
	for _, section := range tempo.Sections() {
		section := section
		eg.Go(func() error {
			data, err := l.client.FetchRaw(gctx, section, sectionDate(section, date))
			if err != nil {
				return fmt.Errorf("%s: %w", section, err)
			}
			mu.Lock()
			raws[section] = data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

func (l *Loader) readCached(date string) map[tempo.Section][]byte {
	raws := make(map[tempo.Section][]byte)
	for _, section := range tempo.Sections() {
		if data, _, ok := l.cache.Get(string(section), sectionDate(section, date)); ok {
			raws[section] = data
		}
	}
	return raws
}

func (l *Loader) writeCached(date string, raws map[tempo.Section][]byte) {
	for section, raw := range raws {
		_ = l.cache.Put(string(section), sectionDate(section, date), raw)
	}
}

// sectionDate returns the cache/query date for a section. The week endpoint
// is keyed by the Monday of the date's week so all its days share one entry.
func sectionDate(section tempo.Section, date string) string {
	if section != tempo.SectionWeek {
		return date
	}
	return WeekStart(date)
}

// WeekStart returns the Monday of the week containing a YYYY-MM-DD date,
// falling back to the date itself when it does not parse.
func WeekStart(date string) string {
	t, ok := tempo.ParseDate(date)
	if !ok {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

// decodeDay assembles a snapshot from per-section payloads. In strict mode
// a section that fails to decode fails the whole day (fresh network data
// must be coherent); in lenient mode it is skipped (a stale cache snapshot
// should degrade, not block).
func decodeDay(date string, raws map[tempo.Section][]byte, strict bool) (state.DaySnapshot, error) {
	snap := state.DaySnapshot{Date: date}

	if raw, ok := raws[tempo.SectionBriefing]; ok {
		var briefing tempo.DailyBriefing
		if err := json.Unmarshal(raw, &briefing); err != nil {
			if strict {
				return snap, fmt.Errorf("decode briefing: %w", err)
			}
		} else {
			snap.Briefing = &briefing
		}
	}
	if raw, ok := raws[tempo.SectionTimeline]; ok {
		var timeline tempo.Timeline
		if err := json.Unmarshal(raw, &timeline); err != nil {
			if strict {
				return snap, fmt.Errorf("decode timeline: %w", err)
			}
		} else {
			snap.Timeline = &timeline
		}
	}
	if raw, ok := raws[tempo.SectionTasks]; ok {
		var tasks tempo.TaskListResponse
		if err := json.Unmarshal(raw, &tasks); err != nil {
			if strict {
				return snap, fmt.Errorf("decode tasks: %w", err)
			}
		} else {
			snap.Tasks = tasks.Tasks
		}
	}
	if raw, ok := raws[tempo.SectionHealth]; ok {
		var health tempo.HealthDay
		if err := json.Unmarshal(raw, &health); err != nil {
			if strict {
				return snap, fmt.Errorf("decode health: %w", err)
			}
		} else {
			snap.Health = &health
		}
	}
	if raw, ok := raws[tempo.SectionWeek]; ok {
		var week tempo.WeekReview
		if err := json.Unmarshal(raw, &week); err != nil {
			if strict {
				return snap, fmt.Errorf("decode week: %w", err)
			}
		} else {
			snap.Week = &week
		}
	}
	return snap, nil
}

// Today returns the current date in the process-local zone, formatted as
// the API expects.
func Today() string {
	return time.Now().Format("2006-01-02")
}
