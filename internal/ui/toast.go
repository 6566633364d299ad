package ui

import "time"

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

const toastLifetime = 5 * time.Second

type toast struct {
	text    string
	level   toastLevel
	expires time.Time
}

func newToast(text string, level toastLevel, now time.Time) toast {
	return toast{text: text, level: level, expires: now.Add(toastLifetime)}
}

// pruneToasts drops expired toasts, preserving order.
func pruneToasts(toasts []toast, now time.Time) []toast {
	kept := toasts[:0]
	for _, t := range toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	return kept
}
