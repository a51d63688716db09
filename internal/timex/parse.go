package timex

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried for the ISO attempt, most specific first. Layouts without a
// zone are anchored in the local location so they compare correctly against
// the slash formats below.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexible interprets a date string of unknown provenance. The backend
// mixes ISO-8601 timestamps, Brazilian "DD/MM/YYYY[, HH:MM[:SS]]" strings
// and raw epoch numbers in log records, so each format is attempted in turn:
//
//  1. ISO-8601.
//  2. Slash form, day first, with an optional clock after a comma.
//  3. A bare number, taken as epoch milliseconds (or seconds when small).
//  4. A loose split on '-', 'T' and space, reassembled as Y-M-D [H:M[:S]].
//
// Unparseable input yields ok=false; callers decide how unknown dates sort.
func ParseFlexible(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	if strings.Contains(s, "/") {
		if t, ok := parseSlashDate(s); ok {
			return t, true
		}
		return time.Time{}, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromEpoch(n), true
	}

	if t, ok := parseLooseDate(s); ok {
		return t, true
	}

	return time.Time{}, false
}

// fromEpoch maps a raw numeric value to an instant. Values of eleven or
// fewer digits cannot be a recent millisecond timestamp, so they are taken
// as seconds.
func fromEpoch(n int64) time.Time {
	if n >= 1e11 || n <= -1e11 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

// parseSlashDate handles "DD/MM/YYYY" optionally followed by ", HH:MM[:SS]".
func parseSlashDate(s string) (time.Time, bool) {
	datePart := s
	clockPart := ""
	if i := strings.Index(s, ","); i >= 0 {
		datePart = strings.TrimSpace(s[:i])
		clockPart = strings.TrimSpace(s[i+1:])
	}

	dmy := strings.Split(datePart, "/")
	if len(dmy) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(dmy[0])
	month, err2 := strconv.Atoi(dmy[1])
	year, err3 := strconv.Atoi(dmy[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	hour, minute, second, ok := parseClock(clockPart)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
}

// parseLooseDate reassembles strings like "2024-03-15 10:30" or partial
// "YYYY-MM-DD"-like values that the ISO layouts rejected.
func parseLooseDate(s string) (time.Time, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == 'T' || r == ' '
	})
	if len(fields) < 3 {
		return time.Time{}, false
	}

	year, err1 := strconv.Atoi(fields[0])
	month, err2 := strconv.Atoi(fields[1])
	day, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	clock := ""
	if len(fields) > 3 {
		clock = fields[3]
	}
	hour, minute, second, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
}

// parseClock accepts "", "HH:MM" or "HH:MM:SS".
func parseClock(s string) (hour, minute, second int, ok bool) {
	if s == "" {
		return 0, 0, 0, true
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if len(parts) == 3 {
		if second, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, false
		}
	}
	return hour, minute, second, true
}
