// Package dataset loads the static station and train reference data the
// search engine runs over. The dataset is read once at startup and is
// immutable for the lifetime of the process.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ani232003/IRCTC/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// Dataset is the parsed, indexed reference data.
type Dataset struct {
	Stations []model.Station `json:"stations"`
	Trains   []model.Train   `json:"trains"`

	byNumber   map[string]*model.Train
	nameByCode map[string]string
}

// Load reads the dataset from the given JSON file. An empty path loads
// the embedded seed dataset instead, which keeps the server bootable
// without any external files.
func Load(path string) (*Dataset, error) {
	raw := seedJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}
		raw = b
	}

	ds := &Dataset{}
	if err := json.Unmarshal(raw, ds); err != nil {
		return nil, fmt.Errorf("dataset: parse: %w", err)
	}
	if len(ds.Stations) == 0 {
		return nil, fmt.Errorf("dataset: no stations")
	}

	ds.byNumber = make(map[string]*model.Train, len(ds.Trains))
	for i := range ds.Trains {
		ds.byNumber[ds.Trains[i].TrainNumber] = &ds.Trains[i]
	}
	ds.nameByCode = make(map[string]string, len(ds.Stations))
	for _, s := range ds.Stations {
		if s.StationCode != "" {
			ds.nameByCode[s.StationCode] = s.StationName
		}
	}
	return ds, nil
}

// TrainByNumber looks a train up by its unique number.
func (d *Dataset) TrainByNumber(number string) (*model.Train, bool) {
	t, ok := d.byNumber[number]
	return t, ok
}

// StationName returns the display name for a station code, or the code
// itself when it is unknown.
func (d *Dataset) StationName(code string) string {
	if name, ok := d.nameByCode[code]; ok {
		return name
	}
	return code
}

// MatchStations returns stations whose name contains the query
// (case-insensitive), in dataset order. Used by the search-form
// autocomplete. An empty query returns every station.
func (d *Dataset) MatchStations(query string) []model.Station {
	if query == "" {
		return d.Stations
	}
	var out []model.Station
	for _, s := range d.Stations {
		if containsFold(s.StationName, query) || containsFold(s.StationCode, query) {
			out = append(out, s)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
