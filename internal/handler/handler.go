// Package handler contains HTTP request handlers for the ticketing API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ani232003/IRCTC/internal/dataset"
	"github.com/ani232003/IRCTC/internal/model"
	"github.com/ani232003/IRCTC/internal/search"
)

// SearchHandler handles train search and station lookup HTTP requests.
type SearchHandler struct {
	ds *dataset.Dataset
}

// NewSearchHandler creates a new handler over the loaded dataset.
func NewSearchHandler(ds *dataset.Dataset) *SearchHandler {
	return &SearchHandler{ds: ds}
}

// SearchRequest is the search form plus the filter sidebar state.
// All filter fields are optional; leaving one empty skips that facet.
type SearchRequest struct {
	From string `json:"from"` // station name, code, or partial name
	To   string `json:"to"`
	Date string `json:"date"` // travel date, "YYYY-MM-DD"

	Classes        []string          `json:"classes,omitempty"`
	TrainTypes     []model.TrainType `json:"trainTypes,omitempty"`
	DepartureSlots []string          `json:"departureSlots,omitempty"`
	ArrivalSlots   []string          `json:"arrivalSlots,omitempty"`
	Days           []string          `json:"days,omitempty"`
	MaxFare        *int              `json:"maxFare,omitempty"`
	OnlyAvailable  bool              `json:"onlyAvailable,omitempty"`
}

// SearchResponse is the results page payload: the filtered trains plus
// the metadata the filter sidebar is built from.
type SearchResponse struct {
	FromCode    string            `json:"fromCode"`
	FromStation string            `json:"fromStation"`
	ToCode      string            `json:"toCode"`
	ToStation   string            `json:"toStation"`
	Trains      []model.Train     `json:"trains"`
	TrainTypes  []model.TrainType `json:"trainTypes"` // types present on the route, unfiltered
	MinFare     int               `json:"minFare"`    // fare-ceiling slider bounds for the route
	MaxFare     int               `json:"maxFare"`
	TimeSlots   []string          `json:"timeSlots"`
}

// Search handles POST /api/v1/search
//
// Resolves the free-text from/to inputs to station codes, selects the
// trains on that exact route, and narrows them by the selected facets.
// An unknown route is not an error: it returns 200 with zero trains.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}
	if req.From == "" || req.To == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "both from and to stations are required",
		})
		return
	}

	fromCode := search.ResolveStationCode(h.ds.Stations, req.From)
	toCode := search.ResolveStationCode(h.ds.Stations, req.To)

	route := search.Route(h.ds.Trains, fromCode, toCode)
	minFare, maxFare := search.FareBounds(route)

	filtered := search.Apply(route, search.Criteria{
		Classes:        req.Classes,
		TrainTypes:     req.TrainTypes,
		DepartureSlots: req.DepartureSlots,
		ArrivalSlots:   req.ArrivalSlots,
		Days:           req.Days,
		FareCeiling:    req.MaxFare,
		OnlyAvailable:  req.OnlyAvailable,
		Date:           req.Date,
	})
	if filtered == nil {
		filtered = []model.Train{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		FromCode:    fromCode,
		FromStation: h.ds.StationName(fromCode),
		ToCode:      toCode,
		ToStation:   h.ds.StationName(toCode),
		Trains:      filtered,
		TrainTypes:  search.TrainTypes(route),
		MinFare:     minFare,
		MaxFare:     maxFare,
		TimeSlots:   search.DefaultSlots,
	})
}

// Stations handles GET /api/v1/stations?q=...
//
// Station autocomplete for the search form. An empty query returns the
// full station list.
func (h *SearchHandler) Stations(w http.ResponseWriter, r *http.Request) {
	matched := h.ds.MatchStations(r.URL.Query().Get("q"))
	if matched == nil {
		matched = []model.Station{}
	}
	writeJSON(w, http.StatusOK, matched)
}

// TrainDetails handles GET /api/v1/trains/{number}
func (h *SearchHandler) TrainDetails(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	train, ok := h.ds.TrainByNumber(number)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": "No train with number " + number + ".",
		})
		return
	}
	writeJSON(w, http.StatusOK, train)
}

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
