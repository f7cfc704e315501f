// Package search implements the route and filter engine behind the train
// results page: free-text station resolution, route selection over the
// static train dataset, and the independent facet filters that narrow the
// result set.
//
// Every function here is a pure, total function of its inputs. The engine
// holds no locks and no ambient state, so concurrent callers can never
// observe partial results. Filters only ever shrink the route-matched set
// and never reorder it: output preserves dataset order.
package search

import (
	"strings"

	"github.com/ani232003/IRCTC/internal/model"
)

// ─── Station Resolution ─────────────────────────────────────

// ResolveStationCode maps free-text user input to a canonical station code.
//
// Matching order: exact station name, then exact station code, then first
// substring match against a station name. An exact name always wins over a
// partial one, and users may type either a code or a name. Unresolvable
// input is returned unchanged so the downstream route lookup yields an
// empty result set instead of failing.
func ResolveStationCode(stations []model.Station, input string) string {
	norm := strings.ToLower(strings.TrimSpace(input))
	if norm == "" {
		return input
	}
	for i := range stations {
		if strings.ToLower(stations[i].StationName) == norm {
			return stations[i].StationCode
		}
	}
	for i := range stations {
		if strings.ToLower(stations[i].StationCode) == norm {
			return stations[i].StationCode
		}
	}
	for i := range stations {
		if strings.Contains(strings.ToLower(stations[i].StationName), norm) {
			return stations[i].StationCode
		}
	}
	return input
}

// ─── Route Selection ────────────────────────────────────────

// Route selects the trains running exactly from fromCode to toCode,
// preserving dataset order. No fuzzy matching happens here — resolution
// already did. Empty codes match nothing.
func Route(trains []model.Train, fromCode, toCode string) []model.Train {
	if fromCode == "" || toCode == "" {
		return nil
	}
	var matched []model.Train
	for i := range trains {
		if trains[i].SourceCode == fromCode && trains[i].DestinationCode == toCode {
			matched = append(matched, trains[i])
		}
	}
	return matched
}

// ─── Facet Filters ──────────────────────────────────────────

// Criteria is one facet selection. The zero value filters nothing: an
// empty slice (or nil ceiling) is a no-op for that facet, matching the
// untouched state of the filter sidebar.
type Criteria struct {
	Classes        []string          // class codes; keep trains offering at least one
	TrainTypes     []model.TrainType // derived type labels
	DepartureSlots []string          // "HH:MM-HH:MM" hour buckets
	ArrivalSlots   []string
	Days           []string // weekday abbreviations
	FareCeiling    *int     // inclusive upper bound on the minimum class fare
	OnlyAvailable  bool     // keep only trains bookable on Date
	Date           string   // travel date, consulted by the availability facet
}

// Apply narrows the route-matched trains by each selected facet in turn.
// The output is always a subset of the input, in the input's order, and
// applying the same criteria twice yields the same result as once.
func Apply(trains []model.Train, c Criteria) []model.Train {
	result := trains

	if len(c.Classes) > 0 {
		result = keep(result, func(t *model.Train) bool {
			for _, cls := range t.Classes {
				if containsString(c.Classes, cls) {
					return true
				}
			}
			return false
		})
	}

	if len(c.TrainTypes) > 0 {
		result = keep(result, func(t *model.Train) bool {
			return containsType(c.TrainTypes, DeriveTrainType(t.TrainName))
		})
	}

	if len(c.DepartureSlots) > 0 {
		result = keep(result, func(t *model.Train) bool {
			return hourInAnySlot(t.DepartureTime, c.DepartureSlots)
		})
	}

	if len(c.ArrivalSlots) > 0 {
		result = keep(result, func(t *model.Train) bool {
			return hourInAnySlot(t.ArrivalTime, c.ArrivalSlots)
		})
	}

	if len(c.Days) > 0 {
		result = keep(result, func(t *model.Train) bool {
			for _, d := range c.Days {
				if t.RunsOn(d) {
					return true
				}
			}
			return false
		})
	}

	if c.FareCeiling != nil {
		ceiling := *c.FareCeiling
		result = keep(result, func(t *model.Train) bool {
			min, ok := t.MinFare()
			return ok && min <= ceiling
		})
	}

	if c.OnlyAvailable {
		result = keep(result, func(t *model.Train) bool {
			for _, avail := range t.Availability[c.Date] {
				if avail.Bookable() {
					return true
				}
			}
			return false
		})
	}

	return result
}

// ─── Fare Range Bootstrapping ───────────────────────────────

// Placeholder fare bounds used when a route carries no fare data at all.
const (
	PlaceholderMinFare = 0
	PlaceholderMaxFare = 100000
)

// FareBounds computes the selectable fare-ceiling range for a route: the
// minimum and maximum fares across all classes of all matching trains.
// Callers reset the user's ceiling to the returned max on every new route
// so nothing is hidden by default.
func FareBounds(trains []model.Train) (min, max int) {
	found := false
	for i := range trains {
		for _, f := range trains[i].ClassesFare {
			amount := f.Amount()
			if amount <= 0 {
				continue
			}
			if !found {
				min, max = amount, amount
				found = true
				continue
			}
			if amount < min {
				min = amount
			}
			if amount > max {
				max = amount
			}
		}
	}
	if !found {
		return PlaceholderMinFare, PlaceholderMaxFare
	}
	return min, max
}

// ─── Helpers ────────────────────────────────────────────────

func keep(trains []model.Train, pred func(*model.Train) bool) []model.Train {
	var out []model.Train
	for i := range trains {
		if pred(&trains[i]) {
			out = append(out, trains[i])
		}
	}
	return out
}

func hourInAnySlot(clock string, slots []string) bool {
	hour, ok := ClockHour(clock)
	if !ok {
		return false
	}
	for _, raw := range slots {
		if slot, ok := ParseSlot(raw); ok && slot.Contains(hour) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsType(haystack []model.TrainType, needle model.TrainType) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}
