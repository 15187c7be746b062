package domain

import "time"

// dayKeyLayout is the calendar-day key format used for all streak and
// mission day comparisons.
const dayKeyLayout = "2006-01-02"

// DayKey converts a timestamp to its calendar-day key ("YYYY-MM-DD") in
// the timestamp's own location. Streaks and daily missions compare these
// keys rather than raw timestamps, so two reviews at 00:05 and 23:55 of
// the same local day count as the same day.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}
