package tempo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Section names one date-keyed slice of the day's data. Section values
// double as cache keys.
type Section string

const (
	SectionBriefing Section = "briefing"
	SectionTimeline Section = "timeline"
	SectionTasks    Section = "tasks"
	SectionHealth   Section = "health"
	SectionWeek     Section = "week"
)

// Sections lists every date-keyed section in fetch order.
func Sections() []Section {
	return []Section{SectionBriefing, SectionTimeline, SectionTasks, SectionHealth, SectionWeek}
}

// Fetcher defines the read surface of the Tempo API. Implemented by
// *Client; fakes implement it in tests.
type Fetcher interface {
	FetchRaw(ctx context.Context, section Section, date string) ([]byte, error)
	FetchBriefing(ctx context.Context, date string) (*DailyBriefing, error)
	FetchTimeline(ctx context.Context, date string) (*Timeline, error)
	FetchTasks(ctx context.Context, date string) ([]Task, error)
	FetchHealth(ctx context.Context, date string) (*HealthDay, error)
	FetchWeek(ctx context.Context, start string) (*WeekReview, error)
	FetchStatus(ctx context.Context) (*ServerStatus, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the Tempo HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:8644"
	defaultUserAgent = "daybrief/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given server address. An empty token
// disables authentication headers.
func NewClient(server, token string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

// FetchRaw retrieves a section's response body without decoding it. The
// loader caches these bytes verbatim as the offline snapshot.
func (c *Client) FetchRaw(ctx context.Context, section Section, date string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if d := strings.TrimSpace(date); d != "" {
		// The week endpoint is keyed by its start date.
		if section == SectionWeek {
			values.Set("start", d)
		} else {
			values.Set("date", d)
		}
	}
	return c.getRaw(ctx, "/api/v1/"+string(section), values)
}

// FetchBriefing retrieves the daily briefing for a YYYY-MM-DD date.
func (c *Client) FetchBriefing(ctx context.Context, date string) (*DailyBriefing, error) {
	var payload DailyBriefing
	if err := c.fetchSection(ctx, SectionBriefing, date, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchTimeline retrieves the day timeline (events and gaps).
func (c *Client) FetchTimeline(ctx context.Context, date string) (*Timeline, error) {
	var payload Timeline
	if err := c.fetchSection(ctx, SectionTimeline, date, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchTasks retrieves the task list scheduled for a date.
func (c *Client) FetchTasks(ctx context.Context, date string) ([]Task, error) {
	var payload TaskListResponse
	if err := c.fetchSection(ctx, SectionTasks, date, &payload); err != nil {
		return nil, err
	}
	return payload.Tasks, nil
}

// FetchHealth retrieves the per-day health metric set.
func (c *Client) FetchHealth(ctx context.Context, date string) (*HealthDay, error) {
	var payload HealthDay
	if err := c.fetchSection(ctx, SectionHealth, date, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchWeek retrieves the weekly review starting at a Monday date.
func (c *Client) FetchWeek(ctx context.Context, start string) (*WeekReview, error) {
	var payload WeekReview
	if err := c.fetchSection(ctx, SectionWeek, start, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchStatus retrieves server health and version information.
func (c *Client) FetchStatus(ctx context.Context) (*ServerStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	data, err := c.getRaw(ctx, "/api/v1/status", nil)
	if err != nil {
		return nil, err
	}
	var payload ServerStatus
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

func (c *Client) fetchSection(ctx context.Context, section Section, date string, dest any) error {
	data, err := c.FetchRaw(ctx, section, date)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
