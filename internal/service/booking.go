// Package service contains the business logic of the ticketing flow:
// quoting a booking from the passenger form, confirming it through the
// mock payment step, and listing/cancelling persisted tickets.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/ani232003/IRCTC/internal/dataset"
	"github.com/ani232003/IRCTC/internal/model"
	"github.com/ani232003/IRCTC/pkg/pnr"
)

// ─── Errors ─────────────────────────────────────────────────

var (
	// ErrTrainNotFound is returned when the requested train number is not
	// in the dataset.
	ErrTrainNotFound = errors.New("train not found")

	// ErrClassNotOffered is returned when the chosen class has no fare on
	// the selected train. Every persisted booking references a fare present
	// in the train's class fares.
	ErrClassNotOffered = errors.New("selected class is not offered by this train")

	// ErrInvalidBooking is returned for form-level violations: missing
	// travel date, bad seat count, passenger/seat mismatch.
	ErrInvalidBooking = errors.New("invalid booking form")

	// ErrInvalidPassenger is returned for per-passenger field violations.
	ErrInvalidPassenger = errors.New("invalid passenger details")

	// ErrTicketNotFound is returned when no persisted booking carries the
	// given PNR.
	ErrTicketNotFound = errors.New("ticket not found")
)

// ─── Ticket Store ───────────────────────────────────────────

// TicketStore is the persisted-booking collaborator. Bookings are kept in
// insertion order; cancellation overwrites the full set (last writer
// wins, callers filter by PNR themselves).
type TicketStore interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	AppendBooking(ctx context.Context, b *model.Booking) error
	ReplaceBookings(ctx context.Context, bookings []model.Booking) error
	PNRExists(ctx context.Context, pnr string) (bool, error)
}

// ─── BookingService ─────────────────────────────────────────

// BookingService drives the booking flow. The dataset is immutable and
// the service keeps no per-request state, so it is safe for concurrent use.
type BookingService struct {
	ds    *dataset.Dataset
	store TicketStore
	pnrs  *pnr.Generator
}

// NewBookingService creates a booking service.
func NewBookingService(ds *dataset.Dataset, store TicketStore, pnrs *pnr.Generator) *BookingService {
	return &BookingService{ds: ds, store: store, pnrs: pnrs}
}

// QuoteRequest is the filled booking form.
type QuoteRequest struct {
	TrainNumber string               `json:"trainNumber"`
	Date        string               `json:"date"` // travel date, "YYYY-MM-DD"
	ClassType   string               `json:"classType"`
	NumSeats    int                  `json:"numSeats"`
	Passengers  []model.Passenger    `json:"passengers"`
	Options     model.BookingOptions `json:"options"`
}

// Quote validates the booking form and turns it into a BookingDraft: the
// booking-in-progress handed to the payment step. Nothing is persisted.
//
// Fare is the chosen class fare multiplied by the passenger count.
func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (*model.BookingDraft, error) {
	train, ok := s.ds.TrainByNumber(req.TrainNumber)
	if !ok {
		return nil, ErrTrainNotFound
	}

	if req.Date == "" {
		return nil, fmt.Errorf("%w: travel date is required", ErrInvalidBooking)
	}
	if req.NumSeats < 1 {
		return nil, fmt.Errorf("%w: number of seats must be at least 1", ErrInvalidBooking)
	}
	if len(req.Passengers) != req.NumSeats {
		return nil, fmt.Errorf("%w: %d passengers for %d seats", ErrInvalidBooking, len(req.Passengers), req.NumSeats)
	}

	fare, ok := train.ClassesFare[req.ClassType]
	if !ok || fare.Amount() <= 0 {
		return nil, ErrClassNotOffered
	}

	for i := range req.Passengers {
		if err := validatePassenger(i, &req.Passengers[i]); err != nil {
			return nil, err
		}
	}

	draft := &model.BookingDraft{
		TrainNumber:   train.TrainNumber,
		TrainName:     train.TrainName,
		From:          s.ds.StationName(train.SourceCode),
		To:            s.ds.StationName(train.DestinationCode),
		DepartureTime: train.DepartureTime,
		ArrivalTime:   train.ArrivalTime,
		BookingDate:   req.Date,
		ClassType:     req.ClassType,
		NumSeats:      req.NumSeats,
		Passengers:    req.Passengers,
		Fare:          fare.Amount() * len(req.Passengers),
		Options:       req.Options,
	}

	log.Printf("[booking] Quoted train %s class %s: %d seat(s), fare ₹%d",
		draft.TrainNumber, draft.ClassType, draft.NumSeats, draft.Fare)

	return draft, nil
}

// ─── Passenger validation ───────────────────────────────────

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// validatePassenger enforces the booking-form rules for one passenger.
// Failures block submission and never mutate persisted state.
func validatePassenger(idx int, p *model.Passenger) error {
	n := idx + 1
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: passenger %d: name is required", ErrInvalidPassenger, n)
	case p.Gender == "":
		return fmt.Errorf("%w: passenger %d: gender is required", ErrInvalidPassenger, n)
	case p.Email == "":
		return fmt.Errorf("%w: passenger %d: email is required", ErrInvalidPassenger, n)
	case p.Address == "":
		return fmt.Errorf("%w: passenger %d: address is required", ErrInvalidPassenger, n)
	case p.IDType == "":
		return fmt.Errorf("%w: passenger %d: ID type is required", ErrInvalidPassenger, n)
	case p.IDNumber == "":
		return fmt.Errorf("%w: passenger %d: ID number is required", ErrInvalidPassenger, n)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: passenger %d: age must be a positive number", ErrInvalidPassenger, n)
	}
	if !phonePattern.MatchString(p.Phone) {
		return fmt.Errorf("%w: passenger %d: phone must be 10 digits", ErrInvalidPassenger, n)
	}
	return nil
}
