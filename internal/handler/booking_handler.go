package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ani232003/IRCTC/internal/model"
	"github.com/ani232003/IRCTC/internal/service"
)

// BookingHandler handles the booking form, mock payment, and ticket
// HTTP requests.
type BookingHandler struct {
	bookingSvc *service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingSvc *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Quote handles POST /api/v1/bookings/quote
//
// Validates the filled booking form and returns the priced draft that
// the client hands to the payment endpoint. Nothing is persisted.
//
// Response codes:
//
//	200  — Valid form (returns the booking draft with the computed fare)
//	404  — Train number not in the dataset
//	422  — Class not offered, form violation, or bad passenger details
//	500  — Unexpected error
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	draft, err := h.bookingSvc.Quote(r.Context(), req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// ConfirmRequest is the payment form: the quoted draft plus card details.
type ConfirmRequest struct {
	Draft model.BookingDraft  `json:"draft"`
	Card  service.CardDetails `json:"card"`
}

// Confirm handles POST /api/v1/payments
//
// Runs the mock payment step over a quoted draft: validates the card
// form, allocates a PNR, and persists exactly one booking.
//
// Response codes:
//
//	201  — Booking confirmed (returns the booking with its PNR)
//	404  — Draft references a train no longer in the dataset
//	422  — Invalid card details or class no longer offered
//	503  — PNR allocation exhausted
//	500  — Unexpected error
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	booking, err := h.bookingSvc.Confirm(r.Context(), req.Draft, req.Card)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCard):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":   "invalid_card",
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrPNRAllocation):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error":   "pnr_exhausted",
				"message": "Could not allocate a PNR. Please retry.",
			})
		default:
			h.writeBookingError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// Tickets handles GET /api/v1/tickets
//
// Lists every booked ticket in booking order.
func (h *BookingHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.bookingSvc.Tickets(r.Context())
	if err != nil {
		log.Printf("[handler] list tickets error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
		return
	}
	if tickets == nil {
		tickets = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Ticket handles GET /api/v1/tickets/{pnr}
func (h *BookingHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.Ticket(r.Context(), mux.Vars(r)["pnr"])
	if err != nil {
		h.writeTicketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// Cancel handles DELETE /api/v1/tickets/{pnr}
//
// Removes the ticket with the given PNR. The remaining tickets keep
// their relative order.
//
// Response codes:
//
//	200  — Ticket cancelled
//	404  — No ticket with that PNR (store is left untouched)
//	500  — Unexpected error
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	pnr := mux.Vars(r)["pnr"]
	if err := h.bookingSvc.Cancel(r.Context(), pnr); err != nil {
		h.writeTicketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "cancelled",
		"pnr":    pnr,
	})
}

// writeBookingError maps the booking-form sentinels to HTTP responses.
func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTrainNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "train_not_found",
			"message": "No train with that number.",
		})
	case errors.Is(err, service.ErrClassNotOffered):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "class_not_offered",
			"message": "The selected class is not offered by this train.",
		})
	case errors.Is(err, service.ErrInvalidBooking), errors.Is(err, service.ErrInvalidPassenger):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "invalid_form",
			"message": err.Error(),
		})
	default:
		log.Printf("[handler] booking error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
	}
}

// writeTicketError maps the ticket sentinels to HTTP responses.
func (h *BookingHandler) writeTicketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": "No ticket with that PNR.",
		})
	default:
		log.Printf("[handler] ticket error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
	}
}
