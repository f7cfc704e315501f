package search

import (
	"strconv"
	"strings"
)

// ─── Time Slots ─────────────────────────────────────────────

// Slot is a half-open hour range [Start, End) parsed from a
// "HH:MM-HH:MM" string. Minute components are ignored: the results page
// buckets trains by departure/arrival hour only.
type Slot struct {
	Start int // inclusive hour
	End   int // exclusive hour
}

// DefaultSlots are the four buckets offered by the filter sidebar.
var DefaultSlots = []string{
	"00:00-06:00",
	"06:00-12:00",
	"12:00-18:00",
	"18:00-24:00",
}

// ParseSlot parses "HH:MM-HH:MM" into a Slot. Unparseable hour components
// fall back to 0 for the start and 24 for the end, so a mangled slot
// degrades to a wider bucket instead of silently dropping trains.
func ParseSlot(s string) (Slot, bool) {
	if s == "" {
		return Slot{}, false
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Slot{}, false
	}
	return Slot{
		Start: hourOf(parts[0], 0),
		End:   hourOf(parts[1], 24),
	}, true
}

// Contains reports whether the given clock hour falls inside the slot.
// The end hour is exclusive: a 06:00 departure belongs to [06,12), not [00,06).
func (s Slot) Contains(hour int) bool {
	return hour >= s.Start && hour < s.End
}

// ClockHour extracts the hour component of an "HH:MM" clock string.
// Returns false for empty or unparseable values.
func ClockHour(clock string) (int, bool) {
	if clock == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.SplitN(clock, ":", 2)[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func hourOf(clock string, fallback int) int {
	n, err := strconv.Atoi(strings.SplitN(clock, ":", 2)[0])
	if err != nil {
		return fallback
	}
	return n
}
