package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/ani232003/IRCTC/internal/model"
)

// ─── Errors ─────────────────────────────────────────────────

var (
	// ErrInvalidCard is returned for card format violations. Payment is
	// simulated; no charge ever happens.
	ErrInvalidCard = errors.New("invalid card details")

	// ErrPNRAllocation is returned when every drawn PNR collided with a
	// stored one. With a ~9×10⁹ keyspace this only fires when the random
	// source is broken or the store is absurdly full.
	ErrPNRAllocation = errors.New("could not allocate a unique PNR")
)

// maxPNRAttempts bounds the collision-redraw loop at confirmation time.
const maxPNRAttempts = 5

// ─── Card form ──────────────────────────────────────────────

// CardDetails is the mock payment form.
type CardDetails struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

func validateCard(c CardDetails) error {
	switch {
	case c.Number == "" || c.Expiry == "" || c.CVV == "":
		return fmt.Errorf("%w: please fill all payment fields", ErrInvalidCard)
	case !cardNumberPattern.MatchString(c.Number):
		return fmt.Errorf("%w: card number must be 16 digits", ErrInvalidCard)
	case !expiryPattern.MatchString(c.Expiry):
		return fmt.Errorf("%w: expiry must be in MM/YY format", ErrInvalidCard)
	case !cvvPattern.MatchString(c.CVV):
		return fmt.Errorf("%w: CVV must be 3 digits", ErrInvalidCard)
	}
	return nil
}

// ─── Confirmation ───────────────────────────────────────────

// Confirm is the payment step: it validates the mock card form, allocates
// a PNR, and appends exactly one Booking to the ticket store.
//
// PNRs are drawn uniformly from the 10-digit range and re-drawn when the
// draw collides with a stored PNR, so a confirmation can never silently
// shadow an existing ticket.
func (s *BookingService) Confirm(ctx context.Context, draft model.BookingDraft, card CardDetails) (*model.Booking, error) {
	if err := validateCard(card); err != nil {
		return nil, err
	}

	// Re-check the booking invariant before persisting: the draft must
	// still reference a dataset train offering the chosen class fare.
	train, ok := s.ds.TrainByNumber(draft.TrainNumber)
	if !ok {
		return nil, ErrTrainNotFound
	}
	if fare, ok := train.ClassesFare[draft.ClassType]; !ok || fare.Amount() <= 0 {
		return nil, ErrClassNotOffered
	}

	number, err := s.allocatePNR(ctx)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:           uuid.New(),
		PNR:          number,
		BookingDraft: draft,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.AppendBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("payment: persist booking: %w", err)
	}

	log.Printf("[payment] ✓ Confirmed booking %s (PNR %s): train %s, %d seat(s), ₹%d",
		booking.ID, booking.PNR, booking.TrainNumber, booking.NumSeats, booking.Fare)

	return booking, nil
}

// allocatePNR draws PNRs until one does not collide with the store.
func (s *BookingService) allocatePNR(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxPNRAttempts; attempt++ {
		candidate := s.pnrs.Next()
		exists, err := s.store.PNRExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("payment: check PNR: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		log.Printf("[payment] PNR %s already stored, redrawing (attempt %d)", candidate, attempt+1)
	}
	return "", ErrPNRAllocation
}
