package service

import (
	"context"
	"fmt"
	"log"

	"github.com/ani232003/IRCTC/internal/model"
)

// Tickets returns every persisted booking in store order.
func (s *BookingService) Tickets(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("tickets: list: %w", err)
	}
	return bookings, nil
}

// Ticket returns the persisted booking with the given PNR.
func (s *BookingService) Ticket(ctx context.Context, pnr string) (*model.Booking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("tickets: list: %w", err)
	}
	for i := range bookings {
		if bookings[i].PNR == pnr {
			return &bookings[i], nil
		}
	}
	return nil, ErrTicketNotFound
}

// Cancel removes the booking with the given PNR by overwriting the full
// persisted set, preserving the relative order of the remaining bookings.
// An absent PNR leaves the store untouched and returns ErrTicketNotFound.
func (s *BookingService) Cancel(ctx context.Context, pnr string) error {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("cancel: list: %w", err)
	}

	remaining := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.PNR != pnr {
			remaining = append(remaining, b)
		}
	}
	if len(remaining) == len(bookings) {
		return ErrTicketNotFound
	}

	if err := s.store.ReplaceBookings(ctx, remaining); err != nil {
		return fmt.Errorf("cancel: replace: %w", err)
	}

	log.Printf("[ticket] ✓ Cancelled PNR %s (%d booking(s) remain)", pnr, len(remaining))
	return nil
}
