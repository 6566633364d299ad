// Package queue derives the display view-model from a raw waitlist
// snapshot.
//
// Build is a pure function of (entries, filter, now): it never mutates its
// input, touches no ambient state, and calling it twice with the same
// arguments yields the same output. The refresh controller owns the
// snapshot; this package only transforms it.
package queue

import (
	"sort"
	"time"

	"github.com/waitline/waitline/internal/format"
	"github.com/waitline/waitline/internal/queueapi"
)

// Action is a forward transition the UI may offer for an entry. Removal is
// always available and is not part of the action set.
type Action int

const (
	// ActionCall advances a waiting entry to called.
	ActionCall Action = iota
	// ActionSeat advances a called entry to seated.
	ActionSeat
)

// Target returns the status the action transitions an entry to.
func (a Action) Target() queueapi.Status {
	switch a {
	case ActionCall:
		return queueapi.StatusCalled
	case ActionSeat:
		return queueapi.StatusSeated
	}
	return ""
}

// Label returns the display label for the action.
func (a Action) Label() string {
	switch a {
	case ActionCall:
		return "Call"
	case ActionSeat:
		return "Seat"
	}
	return ""
}

// ActionsFor maps a status to the forward actions the UI should expose.
// Seated and cancelled entries have no forward action; unknown statuses are
// treated the same way.
func ActionsFor(status queueapi.Status) []Action {
	switch status {
	case queueapi.StatusWaiting:
		return []Action{ActionCall}
	case queueapi.StatusCalled:
		return []Action{ActionSeat}
	case queueapi.StatusSeated, queueapi.StatusCancelled:
		return nil
	}
	return nil
}

// Row is one display-ready waitlist entry.
type Row struct {
	Entry queueapi.QueueEntry
	// Position is the 1-based place among waiting entries; zero for any
	// other status (rendered as a dash).
	Position int
	// Wait is the rendered elapsed time since check-in.
	Wait string
	// Actions are the forward transitions available for the entry.
	Actions []Action
}

// Stats aggregates the whole collection, regardless of the display filter.
type Stats struct {
	Waiting       int
	ServedToday   int
	EstimatedWait string
}

// View is the output of the pipeline: the ordered, annotated display list
// plus aggregate statistics.
type View struct {
	Rows  []Row
	Stats Stats
}

// statusPriority orders status groups for display: staff scan waiting
// customers first in arrival order, served and cancelled sink to the bottom.
func statusPriority(status queueapi.Status) int {
	switch status {
	case queueapi.StatusWaiting:
		return 1
	case queueapi.StatusCalled:
		return 2
	case queueapi.StatusSeated:
		return 3
	case queueapi.StatusCancelled:
		return 4
	}
	return 5
}

// Build filters, orders and annotates the raw collection for display and
// computes aggregate statistics over the unfiltered collection.
func Build(entries []queueapi.QueueEntry, filter queueapi.Status, now time.Time) View {
	filtered := make([]queueapi.QueueEntry, 0, len(entries))
	for _, entry := range entries {
		if filter != "" && entry.Status != filter {
			continue
		}
		filtered = append(filtered, entry)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		pi := statusPriority(filtered[i].Status)
		pj := statusPriority(filtered[j].Status)
		if pi != pj {
			return pi < pj
		}
		return filtered[i].ParsedCheckIn().Before(filtered[j].ParsedCheckIn())
	})

	rows := make([]Row, 0, len(filtered))
	position := 0
	for _, entry := range filtered {
		row := Row{
			Entry:   entry,
			Wait:    format.ElapsedWait(entry.ParsedCheckIn(), now),
			Actions: ActionsFor(entry.Status),
		}
		if entry.Status == queueapi.StatusWaiting {
			position++
			row.Position = position
		}
		rows = append(rows, row)
	}

	return View{Rows: rows, Stats: buildStats(entries, now)}
}

// buildStats always looks at the full collection so the header numbers do
// not change when the display filter does.
func buildStats(entries []queueapi.QueueEntry, now time.Time) Stats {
	stats := Stats{}
	for _, entry := range entries {
		switch entry.Status {
		case queueapi.StatusWaiting:
			stats.Waiting++
		case queueapi.StatusSeated:
			// Counted by check-in date, not seating date. The backend has
			// no seated-at timestamp, so an entry seated after midnight
			// lands on its check-in day.
			if sameLocalDay(entry.ParsedCheckIn(), now) {
				stats.ServedToday++
			}
		}
	}
	stats.EstimatedWait = format.EstimatedWait(stats.Waiting)
	return stats
}

func sameLocalDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}
