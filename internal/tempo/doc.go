// Package tempo provides an HTTP client for the Tempo day-planning API and
// the tolerant decoders for its response payloads.
//
// # Overview
//
// Tempo computes everything interesting server-side: briefings, clash
// detection, energy budgets, weekly drift, health correlation. This package
// only fetches those finished results, decodes them into typed records, and
// exposes purely cosmetic display lookups. No business value is ever derived
// client-side.
//
// # Tolerant decoding
//
// The backend's payload shapes are not uniform, and the decoder degrades
// rather than fails:
//
//   - Field casing varies per endpoint (snake_case on some, camelCase on
//     others). Every lookup tries the documented key first and its alternate
//     casing second; absent fields stay at their zero value.
//   - Some values arrive in more than one shape. Confidence accepts both a
//     level string ("high") and a fraction (0.82); neither shape matching
//     leaves it unknown, never an error.
//   - Attendee lists may be structured objects, bare email strings, or a mix;
//     elements matching neither shape are skipped, and null/absent/empty all
//     normalize to nil.
//   - Timeline items are a discriminated union (event vs gap) with no type
//     tag; the decoder dispatches on which keys are present and falls back
//     to trying each variant in order.
//   - Timestamps arrive in several layouts, with and without zone info.
//     ParseTimestamp tries a fixed ordered list; naive layouts parse in the
//     location set by SetNaiveLocation (local by default).
//
// A decode fails only when a record is genuinely corrupt: a non-object
// payload, an event or task with no id, a gap with no duration. Callers
// treat such failures like transport failures and fall back to cached data.
//
// # Client
//
// Create a client with the server address from configuration:
//
//	client, err := tempo.NewClient("127.0.0.1:8644", token)
//	if err != nil {
//		log.Fatalf("init client: %v", err)
//	}
//	briefing, err := client.FetchBriefing(ctx, "2026-08-30")
//
// All requests carry a context, an Accept header, a per-request
// X-Request-ID, and a bearer token when configured. Non-2xx responses and
// decode failures surface as wrapped errors.
//
// # Display attributes
//
// Badge lookups (SeverityBadge, MoodBadge, PriorityBadge, ...) are total
// functions from opaque server classifications to (color, icon, label)
// tuples with an explicit default branch. Colors are abstract names the UI
// layer resolves against the active theme.
package tempo
