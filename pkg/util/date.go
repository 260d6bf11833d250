package util

import "time"

// ISODate is the wire format for date fields.
const ISODate = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(ISODate)
}

// FormatDates renders a date slice as YYYY-MM-DD strings.
func FormatDates(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = FormatDate(t)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD string. Returns (t, true) if it parsed.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayKey truncates t to its UTC calendar day. Used as a join key when
// aligning series from different sources.
func DayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
