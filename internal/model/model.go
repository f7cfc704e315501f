// Package model contains domain models for the train ticketing system.
// Station and Train are immutable reference data loaded once from the
// bundled dataset; Booking is the only persisted entity.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ─── Enums ──────────────────────────────────────────────────

// DataQuality marks whether a train record comes from the official
// timetable or was estimated during dataset assembly.
type DataQuality string

const (
	QualityOfficial  DataQuality = "official"
	QualityEstimated DataQuality = "estimated"
)

// TrainType is a label derived from the train name (see internal/search).
type TrainType string

const (
	TypeShatabdi    TrainType = "SHATABDI"
	TypeTejas       TrainType = "TEJAS"
	TypeVandeBharat TrainType = "VANDE BHARAT"
	TypeRajdhani    TrainType = "RAJDHANI"
	TypeMail        TrainType = "MAIL"
	TypeExpress     TrainType = "EXPRESS"
	TypeOther       TrainType = "OTHER"
)

// ─── Reference Data ─────────────────────────────────────────

// Station is one entry of the static station list.
type Station struct {
	StationCode string `json:"stationCode"`
	StationName string `json:"stationName"`
}

// FareInfo is the fare record for one journey class of a train.
// Older dataset entries carry the amount under base_fare instead of price.
type FareInfo struct {
	Price    int `json:"price,omitempty"`
	BaseFare int `json:"base_fare,omitempty"`
}

// Amount returns the fare in rupees, or 0 when the record carries no price.
func (f FareInfo) Amount() int {
	if f.Price > 0 {
		return f.Price
	}
	return f.BaseFare
}

// Train is one entry of the static train list.
//
// Availability is keyed first by travel date ("YYYY-MM-DD"), then by class
// code. A missing date simply means no availability data exists for it.
type Train struct {
	TrainNumber     string                             `json:"trainNumber"`
	TrainName       string                             `json:"trainName"`
	SourceCode      string                             `json:"sourceCode"`
	DestinationCode string                             `json:"destinationCode"`
	DepartureTime   string                             `json:"departureTime"` // "HH:MM" local clock
	ArrivalTime     string                             `json:"arrivalTime"`   // "HH:MM" local clock
	Duration        string                             `json:"duration"`
	Days            []string                           `json:"days"`    // weekday abbreviations: Mon..Sun
	Classes         []string                           `json:"classes"` // ordered class codes: 1A, 2A, 3A, SL, ...
	ClassesFare     map[string]FareInfo                `json:"classesFare"`
	Availability    map[string]map[string]Availability `json:"availability"`
	DataQuality     DataQuality                        `json:"dataQuality"`
}

// MinFare returns the cheapest fare across all classes of the train.
// Classes without a price are excluded from the minimum. The second
// return value is false when no class carries a fare at all.
func (t *Train) MinFare() (int, bool) {
	min, found := 0, false
	for _, f := range t.ClassesFare {
		amount := f.Amount()
		if amount <= 0 {
			continue
		}
		if !found || amount < min {
			min = amount
			found = true
		}
	}
	return min, found
}

// RunsOn reports whether the train runs on the given weekday abbreviation.
func (t *Train) RunsOn(day string) bool {
	for _, d := range t.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ─── Booking ────────────────────────────────────────────────

// Passenger is transient form data collected by the booking form. It is
// consumed into a Booking and never persisted on its own.
type Passenger struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Age      int    `json:"age"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Meal     string `json:"meal,omitempty"` // Veg, Non-Veg, or empty for none
	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`
}

// BookingOptions are the add-on checkboxes of the booking form.
type BookingOptions struct {
	Disability   bool `json:"disability"`
	FlexibleDate bool `json:"flexibleDate"`
	AvlBerth     bool `json:"avlBerth"`
	RailwayPass  bool `json:"railwayPass"`
}

// BookingDraft is the booking-in-progress handed from the booking form to
// the payment step: every Booking field except the identifiers assigned at
// payment confirmation.
type BookingDraft struct {
	TrainNumber   string         `json:"trainNumber"`
	TrainName     string         `json:"trainName"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	DepartureTime string         `json:"departureTime"`
	ArrivalTime   string         `json:"arrivalTime"`
	BookingDate   string         `json:"bookingDate"` // travel date, "YYYY-MM-DD"
	ClassType     string         `json:"classType"`
	NumSeats      int            `json:"numSeats"`
	Passengers    []Passenger    `json:"passengers"`
	Fare          int            `json:"fare"` // class fare × passenger count, rupees
	Options       BookingOptions `json:"options"`
}

// Booking is a confirmed, persisted ticket. PNR is the user-facing
// identifier; ID is internal.
type Booking struct {
	ID  uuid.UUID `json:"id"`
	PNR string    `json:"pnr"`
	BookingDraft
	CreatedAt time.Time `json:"createdAt"`
}

// ─── Users ──────────────────────────────────────────────────

// User is an account managed by the identity provider.
// PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
