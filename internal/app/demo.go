package app

import (
	"time"

	"github.com/waitline/waitline/internal/queueapi"
)

// DemoEntries returns the fixed sample waitlist shown when no API is
// configured: three parties spanning the non-cancelled statuses, checked in
// 15, 30 and 45 minutes before now.
func DemoEntries(now time.Time) []queueapi.QueueEntry {
	return []queueapi.QueueEntry{
		{
			ID:          "demo-1",
			Name:        "João Silva",
			Phone:       "11999998888",
			PartySize:   2,
			Status:      queueapi.StatusWaiting,
			CheckInTime: now.Add(-15 * time.Minute).Format(time.RFC3339),
		},
		{
			ID:          "demo-2",
			Name:        "Maria Santos",
			Phone:       "11888887777",
			PartySize:   4,
			Status:      queueapi.StatusCalled,
			CheckInTime: now.Add(-30 * time.Minute).Format(time.RFC3339),
		},
		{
			ID:          "demo-3",
			Name:        "Pedro Costa",
			Phone:       "",
			PartySize:   1,
			Status:      queueapi.StatusSeated,
			CheckInTime: now.Add(-45 * time.Minute).Format(time.RFC3339),
		},
	}
}
