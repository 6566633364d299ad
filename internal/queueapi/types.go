package queueapi

import (
	"encoding/json"
	"time"
)

// Second-precision ISO timestamp without a zone, as emitted by the backend.
const backendTimestampLayout = "2006-01-02T15:04:05"

// Status is the lifecycle stage of a queue entry.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCalled    Status = "called"
	StatusSeated    Status = "seated"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the known statuses in lifecycle order.
var Statuses = []Status{StatusWaiting, StatusCalled, StatusSeated, StatusCancelled}

// Valid reports whether the status is one of the four known stages.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusCalled, StatusSeated, StatusCancelled:
		return true
	}
	return false
}

// Label returns the display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusCalled:
		return "Called"
	case StatusSeated:
		return "Seated"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// QueueEntry describes one customer's waitlist record in transport form.
type QueueEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	PartySize   int    `json:"partySize"`
	Status      Status `json:"status"`
	CheckInTime string `json:"checkInTime"`
	// Expiry is a retention hint for the backend (unix seconds, 30 days
	// out at creation). The client never interprets it.
	Expiry int64 `json:"ttl,omitempty"`
}

// ParsedCheckIn returns the check-in timestamp as time.Time when possible.
// Malformed or missing values yield the zero time.
func (e QueueEntry) ParsedCheckIn() time.Time {
	return parseTime(e.CheckInTime)
}

// EntryPatch is a partial update for PUT /queue/<id>. Nil fields are
// omitted from the request body.
type EntryPatch struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PartySize *int    `json:"partySize,omitempty"`
	Status    *Status `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p EntryPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.PartySize == nil && p.Status == nil
}

// StatusPatch builds a patch that only changes the status.
func StatusPatch(status Status) EntryPatch {
	return EntryPatch{Status: &status}
}

// queueList accepts both list representations the API may return: a bare
// JSON array, or an object with an "items" field.
type queueList struct {
	Entries []QueueEntry
}

func (l *queueList) UnmarshalJSON(data []byte) error {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		return json.Unmarshal(data, &l.Entries)
	}
	var wrapper struct {
		Items []QueueEntry `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	l.Entries = wrapper.Items
	return nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(backendTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}
