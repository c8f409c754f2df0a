package utils

import "time"

// TimeNowUTC returns the current time in UTC.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// UTCPtr converts a time pointer to UTC, keeping nil as nil.
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// PrettyDate formats t for chat messages, e.g. "Fri, 19 Dec 2025 09:35 UTC".
func PrettyDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
}
