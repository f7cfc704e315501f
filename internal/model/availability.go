package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ─── Availability ───────────────────────────────────────────

// AvailabilityKind discriminates the two encodings found in the dataset:
// plain seat counts and IRCTC-style status strings ("AVAILABLE-0042",
// "RAC 12", "WL 34", ...).
type AvailabilityKind int

const (
	AvailabilityCount AvailabilityKind = iota
	AvailabilityStatus
)

// Availability is the per-date, per-class seat availability of a train.
// It is a tagged variant rather than a raw string so callers never have
// to sniff which encoding they are holding.
type Availability struct {
	Kind   AvailabilityKind
	Seats  int    // valid when Kind == AvailabilityCount
	Status string // valid when Kind == AvailabilityStatus
}

// CountOf returns a count-encoded availability.
func CountOf(seats int) Availability {
	return Availability{Kind: AvailabilityCount, Seats: seats}
}

// StatusOf returns a status-encoded availability.
func StatusOf(status string) Availability {
	return Availability{Kind: AvailabilityStatus, Status: status}
}

// Bookable reports whether this entry counts as bookable: a positive seat
// count, or a status containing the token AVAILABLE (case-insensitive).
func (a Availability) Bookable() bool {
	switch a.Kind {
	case AvailabilityCount:
		return a.Seats > 0
	case AvailabilityStatus:
		return strings.Contains(strings.ToUpper(a.Status), "AVAILABLE")
	}
	return false
}

// String renders the entry the way the dataset does.
func (a Availability) String() string {
	if a.Kind == AvailabilityCount {
		return strconv.Itoa(a.Seats)
	}
	return a.Status
}

// UnmarshalJSON accepts the mixed dataset encoding: a JSON number, a
// numeric string, or a status string. Numeric strings are normalized to
// the count variant so "42" and 42 behave identically.
func (a *Availability) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = CountOf(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("availability: want number or string, got %s", data)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*a = CountOf(n)
		return nil
	}
	*a = StatusOf(s)
	return nil
}

// MarshalJSON writes counts as numbers and statuses as strings, matching
// the dataset encoding byte for byte.
func (a Availability) MarshalJSON() ([]byte, error) {
	if a.Kind == AvailabilityCount {
		return json.Marshal(a.Seats)
	}
	return json.Marshal(a.Status)
}
