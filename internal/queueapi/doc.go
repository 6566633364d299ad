// Package queueapi provides an HTTP client for the restaurant waitlist API.
//
// # Overview
//
// This package defines the API client for communicating with the remote
// waitlist service. It handles HTTP communication, JSON serialization, and
// type-safe representation of queue entries.
//
// # Client Usage
//
// Create a client using the API URL from configuration:
//
//	client, err := queueapi.NewClient("https://api.example.com/dev", 10*time.Second)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	entries, err := client.FetchQueue(ctx, "")
//	if err != nil {
//		log.Printf("queue fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// The client supports the full queue surface:
//
//   - GET /queue[?status=<status>]: list entries, optionally narrowed by status
//   - POST /queue: create an entry
//   - PUT /queue/<id>: partial update of an entry
//   - DELETE /queue/<id>: remove an entry
//
// List responses may be either a bare JSON array or an object with an
// "items" field; both are accepted.
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - Client initialization errors: invalid base URL
//   - Network errors: connection refused, timeout, DNS failure
//   - Application errors: non-2xx responses, surfaced as *APIError with the
//     body's "message" field when present, otherwise "HTTP <status>"
//   - Deserialization errors: malformed JSON responses
//
// Transport and decode errors are wrapped with descriptive context using
// fmt.Errorf.
//
// # Timestamp Parsing
//
// QueueEntry.ParsedCheckIn handles multiple timestamp formats (RFC3339Nano,
// RFC3339, and the backend's second-precision ISO form). Invalid or missing
// timestamps return time.Time{}; rendering code degrades to placeholders
// rather than failing.
//
// # Design Rationale
//
// The package is intentionally minimal:
//
//   - No caching (the refresh controller owns reload cadence)
//   - No retries (a failure is reported once; the next poll tick recovers)
//   - No request cancellation beyond the per-request timeout
//
// The Client struct is safe for concurrent use.
package queueapi
