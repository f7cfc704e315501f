package search

import (
	"reflect"
	"testing"

	"github.com/ani232003/IRCTC/internal/model"
)

var testStations = []model.Station{
	{StationCode: "NDLS", StationName: "New Delhi"},
	{StationCode: "BCT", StationName: "Mumbai Central"},
	{StationCode: "MAS", StationName: "Chennai Central"},
	{StationCode: "DLI", StationName: "Delhi"},
}

func routeTrains() []model.Train {
	return []model.Train{
		{
			TrainNumber:     "12951",
			TrainName:       "MUMBAI RAJDHANI",
			SourceCode:      "NDLS",
			DestinationCode: "BCT",
			DepartureTime:   "16:25",
			ArrivalTime:     "08:15",
			Days:            []string{"Mon", "Wed"},
			Classes:         []string{"1A", "2A", "3A"},
			ClassesFare: map[string]model.FareInfo{
				"1A": {Price: 1200},
				"3A": {Price: 800},
			},
			Availability: map[string]map[string]model.Availability{
				"2025-01-06": {
					"1A": model.StatusOf("AVAILABLE-0012"),
					"3A": model.CountOf(0),
				},
			},
		},
		{
			TrainNumber:     "12953",
			TrainName:       "AUGUST KRANTI EXPRESS",
			SourceCode:      "NDLS",
			DestinationCode: "BCT",
			DepartureTime:   "06:00",
			ArrivalTime:     "22:40",
			Days:            []string{"Tue", "Thu"},
			Classes:         []string{"2A", "SL"},
			ClassesFare: map[string]model.FareInfo{
				"2A": {Price: 2000},
				"SL": {Price: 450},
			},
			Availability: map[string]map[string]model.Availability{
				"2025-01-06": {
					"2A": model.StatusOf("WL 34"),
					"SL": model.CountOf(0),
				},
			},
		},
	}
}

// ─── Station resolution ─────────────────────────────────────

func TestResolveStationCode_ExactNameWins(t *testing.T) {
	// "Delhi" is an exact station name and a substring of "New Delhi".
	// Exact-name priority must return DLI, not NDLS.
	got := ResolveStationCode(testStations, "Delhi")
	if got != "DLI" {
		t.Errorf("ResolveStationCode(Delhi) = %q, want DLI", got)
	}
}

func TestResolveStationCode_EveryStationName(t *testing.T) {
	for _, s := range testStations {
		if got := ResolveStationCode(testStations, s.StationName); got != s.StationCode {
			t.Errorf("ResolveStationCode(%q) = %q, want %q", s.StationName, got, s.StationCode)
		}
	}
}

func TestResolveStationCode_Code(t *testing.T) {
	if got := ResolveStationCode(testStations, "bct"); got != "BCT" {
		t.Errorf("ResolveStationCode(bct) = %q, want BCT", got)
	}
}

func TestResolveStationCode_Substring(t *testing.T) {
	if got := ResolveStationCode(testStations, "mumbai"); got != "BCT" {
		t.Errorf("ResolveStationCode(mumbai) = %q, want BCT", got)
	}
}

func TestResolveStationCode_Unresolvable(t *testing.T) {
	// Unknown input passes through unchanged so route lookup just yields
	// an empty set.
	if got := ResolveStationCode(testStations, "Atlantis"); got != "Atlantis" {
		t.Errorf("ResolveStationCode(Atlantis) = %q, want raw input back", got)
	}
}

// ─── Route selection ────────────────────────────────────────

func TestRoute_ExactCodes(t *testing.T) {
	trains := routeTrains()
	got := Route(trains, "NDLS", "BCT")
	if len(got) != 2 {
		t.Fatalf("Route(NDLS,BCT) returned %d trains, want 2", len(got))
	}
	if got[0].TrainNumber != "12951" || got[1].TrainNumber != "12953" {
		t.Errorf("Route must preserve dataset order, got %s then %s", got[0].TrainNumber, got[1].TrainNumber)
	}
}

func TestRoute_MissingEndpoint(t *testing.T) {
	if got := Route(routeTrains(), "", "BCT"); len(got) != 0 {
		t.Errorf("Route with empty origin returned %d trains, want 0", len(got))
	}
}

// ─── Facet filters ──────────────────────────────────────────

func TestApply_EmptyCriteriaIsNoOp(t *testing.T) {
	trains := routeTrains()
	got := Apply(trains, Criteria{})
	if !reflect.DeepEqual(got, trains) {
		t.Errorf("Apply with zero criteria must pass the full route set through")
	}
}

func TestApply_OutputIsSubset(t *testing.T) {
	trains := routeTrains()
	ceiling := 500
	crits := []Criteria{
		{Classes: []string{"1A"}},
		{TrainTypes: []model.TrainType{model.TypeRajdhani}},
		{DepartureSlots: []string{"06:00-12:00"}},
		{Days: []string{"Mon"}},
		{FareCeiling: &ceiling},
	}
	for _, c := range crits {
		got := Apply(trains, c)
		for _, train := range got {
			found := false
			for _, in := range trains {
				if in.TrainNumber == train.TrainNumber {
					found = true
				}
			}
			if !found {
				t.Errorf("filter added train %s not in route set", train.TrainNumber)
			}
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	trains := routeTrains()
	c := Criteria{Classes: []string{"2A"}, Days: []string{"Tue", "Thu"}}
	once := Apply(trains, c)
	twice := Apply(once, c)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same criteria twice changed the result")
	}
}

func TestApply_DayFilter(t *testing.T) {
	// Two trains on NDLS→BCT; one runs Mon,Wed, the other Tue,Thu.
	// Selecting {Mon} returns exactly the first.
	got := Apply(routeTrains(), Criteria{Days: []string{"Mon"}})
	if len(got) != 1 || got[0].TrainNumber != "12951" {
		t.Fatalf("day filter {Mon}: got %d trains, want exactly 12951", len(got))
	}
}

func TestApply_ClassFilter(t *testing.T) {
	got := Apply(routeTrains(), Criteria{Classes: []string{"SL"}})
	if len(got) != 1 || got[0].TrainNumber != "12953" {
		t.Fatalf("class filter {SL}: got %d trains, want exactly 12953", len(got))
	}
}

func TestApply_TrainTypeFilter(t *testing.T) {
	got := Apply(routeTrains(), Criteria{TrainTypes: []model.TrainType{model.TypeExpress}})
	if len(got) != 1 || got[0].TrainNumber != "12953" {
		t.Fatalf("type filter {EXPRESS}: got %d trains, want exactly 12953", len(got))
	}
}

func TestApply_DepartureSlotHalfOpen(t *testing.T) {
	// 12953 departs exactly at 06:00: excluded from [00,06), included in [06,12).
	trains := routeTrains()

	early := Apply(trains, Criteria{DepartureSlots: []string{"00:00-06:00"}})
	for _, tr := range early {
		if tr.TrainNumber == "12953" {
			t.Errorf("06:00 departure must be excluded from the [00:00,06:00) slot")
		}
	}

	morning := Apply(trains, Criteria{DepartureSlots: []string{"06:00-12:00"}})
	if len(morning) != 1 || morning[0].TrainNumber != "12953" {
		t.Errorf("06:00 departure must be included in the [06:00,12:00) slot")
	}
}

func TestApply_ArrivalSlot(t *testing.T) {
	got := Apply(routeTrains(), Criteria{ArrivalSlots: []string{"06:00-12:00"}})
	if len(got) != 1 || got[0].TrainNumber != "12951" {
		t.Fatalf("arrival slot [06,12): got %d trains, want exactly 12951", len(got))
	}
}

func TestApply_FareCeilingInclusive(t *testing.T) {
	// 12951's cheapest class is 3A at 800.
	trains := routeTrains()[:1]

	keepAt := 1000
	if got := Apply(trains, Criteria{FareCeiling: &keepAt}); len(got) != 1 {
		t.Errorf("ceiling 1000 must keep a train with min fare 800")
	}

	exact := 800
	if got := Apply(trains, Criteria{FareCeiling: &exact}); len(got) != 1 {
		t.Errorf("ceiling equal to the min fare is inclusive, train must be kept")
	}

	below := 700
	if got := Apply(trains, Criteria{FareCeiling: &below}); len(got) != 0 {
		t.Errorf("ceiling 700 must exclude a train with min fare 800")
	}
}

func TestApply_FareCeilingSkipsMissingPrices(t *testing.T) {
	trains := []model.Train{{
		TrainNumber: "00001",
		ClassesFare: map[string]model.FareInfo{
			"1A": {},            // no price: excluded from the minimum
			"3A": {Price: 900},
		},
	}}
	ceiling := 950
	if got := Apply(trains, Criteria{FareCeiling: &ceiling}); len(got) != 1 {
		t.Errorf("missing price must not drag the minimum to zero or infinity")
	}
}

func TestApply_FareCeilingExcludesFarelessTrain(t *testing.T) {
	trains := []model.Train{{TrainNumber: "00002"}}
	ceiling := 100000
	if got := Apply(trains, Criteria{FareCeiling: &ceiling}); len(got) != 0 {
		t.Errorf("a train with no fares at all is excluded once a ceiling applies")
	}
}

func TestApply_OnlyAvailable(t *testing.T) {
	trains := routeTrains()

	got := Apply(trains, Criteria{OnlyAvailable: true, Date: "2025-01-06"})
	if len(got) != 1 || got[0].TrainNumber != "12951" {
		t.Fatalf("availability filter: got %d trains, want exactly 12951 (AVAILABLE status)", len(got))
	}

	// No availability record for the date drops the train.
	if got := Apply(trains, Criteria{OnlyAvailable: true, Date: "2025-12-25"}); len(got) != 0 {
		t.Errorf("trains without an availability record for the date must be dropped")
	}
}

func TestApply_SafeDefaultsOnSparseTrain(t *testing.T) {
	// A train missing days, classes and fares offers none of those facets
	// but must not crash the engine.
	sparse := []model.Train{{TrainNumber: "00003", TrainName: "GHOST SPECIAL"}}

	if got := Apply(sparse, Criteria{Days: []string{"Mon"}}); len(got) != 0 {
		t.Errorf("train without days must fail the day facet")
	}
	if got := Apply(sparse, Criteria{Classes: []string{"3A"}}); len(got) != 0 {
		t.Errorf("train without classes must fail the class facet")
	}
	if got := Apply(sparse, Criteria{DepartureSlots: []string{"00:00-06:00"}}); len(got) != 0 {
		t.Errorf("train without a departure time must fail the slot facet")
	}
}

// ─── Fare bounds ────────────────────────────────────────────

func TestFareBounds(t *testing.T) {
	min, max := FareBounds(routeTrains())
	if min != 450 || max != 2000 {
		t.Errorf("FareBounds = (%d, %d), want (450, 2000)", min, max)
	}
}

func TestFareBounds_Placeholder(t *testing.T) {
	min, max := FareBounds([]model.Train{{TrainNumber: "00004"}})
	if min != PlaceholderMinFare || max != PlaceholderMaxFare {
		t.Errorf("FareBounds with no fares = (%d, %d), want placeholder (%d, %d)",
			min, max, PlaceholderMinFare, PlaceholderMaxFare)
	}
}
