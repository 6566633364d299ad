// Package format holds the display formatters for waitlist data.
//
// Every function is total: malformed input degrades to a placeholder or is
// returned unchanged, never an error. Timestamps arrive as time.Time; the
// zero value stands for "could not be parsed" (see queueapi.ParsedCheckIn).
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AvgServiceMinutes is the assumed service time per waiting party, used for
// the estimated-wait projection.
const AvgServiceMinutes = 20

const (
	clockPlaceholder    = "--:--"
	datePlaceholder     = "--/--/----"
	durationPlaceholder = "--"
)

// ClockTime renders an hour:minute clock time, or a placeholder when the
// timestamp could not be parsed.
func ClockTime(ts time.Time) string {
	if ts.IsZero() {
		return clockPlaceholder
	}
	return ts.In(time.Local).Format("15:04")
}

// CalendarDate renders a day/month/year date, or a placeholder when the
// timestamp could not be parsed.
func CalendarDate(ts time.Time) string {
	if ts.IsZero() {
		return datePlaceholder
	}
	return ts.In(time.Local).Format("02/01/2006")
}

// ElapsedWait renders how long an entry has been waiting since check-in,
// floored to whole minutes. Unparseable check-ins render as a placeholder.
func ElapsedWait(checkIn, now time.Time) string {
	if checkIn.IsZero() {
		return durationPlaceholder
	}
	mins := int(now.Sub(checkIn).Minutes())
	if mins < 0 {
		mins = 0
	}
	return Minutes(mins)
}

// EstimatedWait projects the wait for a party at the given queue position.
func EstimatedWait(position int) string {
	if position < 0 {
		position = 0
	}
	return Minutes(position * AvgServiceMinutes)
}

// Minutes renders a whole-minute duration as "Mmin" under an hour and
// "Hh Mmin" from an hour up.
func Minutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("%dmin", total)
	}
	return fmt.Sprintf("%dh %dmin", total/60, total%60)
}

// PhoneDisplay masks an 11-digit Brazilian phone number as
// "(DD) DDDDD-DDDD". Anything else, including the empty string, is returned
// unchanged.
func PhoneDisplay(phone string) string {
	digits := digitsOnly(phone)
	if len(digits) != 11 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
}

// NewClientID produces a unique-enough token for optimistic local
// identification before the backend acknowledges the record.
func NewClientID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("customer-%d-%s", time.Now().UnixMilli(), suffix)
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
