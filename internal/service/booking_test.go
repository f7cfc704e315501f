package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ani232003/IRCTC/internal/dataset"
	"github.com/ani232003/IRCTC/internal/model"
	"github.com/ani232003/IRCTC/internal/service"
	"github.com/ani232003/IRCTC/pkg/pnr"
)

// ─── In-memory ticket store ─────────────────────────────────

// memStore implements service.TicketStore for tests.
type memStore struct {
	bookings []model.Booking

	// forceCollisions makes PNRExists report true for the first N calls,
	// to exercise the redraw loop deterministically.
	forceCollisions int
}

func (m *memStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	out := make([]model.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out, nil
}

func (m *memStore) AppendBooking(ctx context.Context, b *model.Booking) error {
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memStore) ReplaceBookings(ctx context.Context, bookings []model.Booking) error {
	m.bookings = make([]model.Booking, len(bookings))
	copy(m.bookings, bookings)
	return nil
}

func (m *memStore) PNRExists(ctx context.Context, p string) (bool, error) {
	if m.forceCollisions > 0 {
		m.forceCollisions--
		return true, nil
	}
	for _, b := range m.bookings {
		if b.PNR == p {
			return true, nil
		}
	}
	return false, nil
}

// ─── Fixtures ───────────────────────────────────────────────

const fixtureJSON = `{
  "stations": [
    {"stationCode": "NDLS", "stationName": "New Delhi"},
    {"stationCode": "BCT", "stationName": "Mumbai Central"}
  ],
  "trains": [
    {
      "trainNumber": "12951",
      "trainName": "MUMBAI RAJDHANI",
      "sourceCode": "NDLS",
      "destinationCode": "BCT",
      "departureTime": "16:25",
      "arrivalTime": "08:15",
      "duration": "15h 50m",
      "days": ["Mon", "Wed"],
      "classes": ["1A", "3A"],
      "classesFare": {"1A": {"price": 1200}, "3A": {"price": 800}},
      "availability": {},
      "dataQuality": "official"
    }
  ]
}`

func fixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))
	ds, err := dataset.Load(path)
	require.NoError(t, err)
	return ds
}

func twoPassengers() []model.Passenger {
	return []model.Passenger{
		{Name: "Asha Rao", Gender: "Female", Age: 31, Phone: "9876543210",
			Email: "asha@example.com", Address: "12 MG Road", IDType: "Aadhar", IDNumber: "1234-5678"},
		{Name: "Vikram Rao", Gender: "Male", Age: 34, Phone: "9876543211",
			Email: "vikram@example.com", Address: "12 MG Road", IDType: "PAN", IDNumber: "ABCDE1234F"},
	}
}

func quoteRequest() service.QuoteRequest {
	return service.QuoteRequest{
		TrainNumber: "12951",
		Date:        "2025-01-06",
		ClassType:   "3A",
		NumSeats:    2,
		Passengers:  twoPassengers(),
	}
}

func validCard() service.CardDetails {
	return service.CardDetails{Number: "1234123412341234", Expiry: "12/27", CVV: "123"}
}

func newService(t *testing.T, store *memStore) *service.BookingService {
	t.Helper()
	return service.NewBookingService(fixtureDataset(t), store, pnr.NewSeeded(7))
}

// ─── Quote ──────────────────────────────────────────────────

func TestQuote_FareIsPerPassenger(t *testing.T) {
	svc := newService(t, &memStore{})

	draft, err := svc.Quote(context.Background(), quoteRequest())
	require.NoError(t, err)

	// 2 passengers × 3A fare 800 = 1600.
	assert.Equal(t, 1600, draft.Fare)
	assert.Equal(t, "MUMBAI RAJDHANI", draft.TrainName)
	assert.Equal(t, "New Delhi", draft.From)
	assert.Equal(t, "Mumbai Central", draft.To)
	assert.Len(t, draft.Passengers, 2)
}

func TestQuote_UnknownTrain(t *testing.T) {
	svc := newService(t, &memStore{})

	req := quoteRequest()
	req.TrainNumber = "99999"
	_, err := svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrTrainNotFound)
}

func TestQuote_ClassNotOffered(t *testing.T) {
	svc := newService(t, &memStore{})

	req := quoteRequest()
	req.ClassType = "SL"
	_, err := svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrClassNotOffered)
}

func TestQuote_PassengerSeatMismatch(t *testing.T) {
	svc := newService(t, &memStore{})

	req := quoteRequest()
	req.NumSeats = 3
	_, err := svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrInvalidBooking)
}

func TestQuote_PassengerValidation(t *testing.T) {
	svc := newService(t, &memStore{})
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*model.Passenger)
	}{
		{"missing name", func(p *model.Passenger) { p.Name = "" }},
		{"missing gender", func(p *model.Passenger) { p.Gender = "" }},
		{"missing email", func(p *model.Passenger) { p.Email = "" }},
		{"missing address", func(p *model.Passenger) { p.Address = "" }},
		{"missing id type", func(p *model.Passenger) { p.IDType = "" }},
		{"missing id number", func(p *model.Passenger) { p.IDNumber = "" }},
		{"zero age", func(p *model.Passenger) { p.Age = 0 }},
		{"negative age", func(p *model.Passenger) { p.Age = -4 }},
		{"short phone", func(p *model.Passenger) { p.Phone = "12345" }},
		{"alpha phone", func(p *model.Passenger) { p.Phone = "98765abcde" }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			req := quoteRequest()
			m.mutate(&req.Passengers[1])
			_, err := svc.Quote(ctx, req)
			assert.ErrorIs(t, err, service.ErrInvalidPassenger)
			assert.Contains(t, err.Error(), "passenger 2")
		})
	}
}

// ─── Confirm ────────────────────────────────────────────────

func TestConfirm_AppendsExactlyOneBooking(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)

	booking, err := svc.Confirm(ctx, *draft, validCard())
	require.NoError(t, err)

	assert.True(t, pnr.Valid(booking.PNR), "PNR %q must be a 10-digit string", booking.PNR)
	assert.Equal(t, 1600, booking.Fare)
	require.Len(t, store.bookings, 1)
	assert.Equal(t, booking.PNR, store.bookings[0].PNR)
}

func TestConfirm_CardValidation(t *testing.T) {
	svc := newService(t, &memStore{})
	ctx := context.Background()
	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)

	cases := []struct {
		name string
		card service.CardDetails
	}{
		{"empty form", service.CardDetails{}},
		{"short number", service.CardDetails{Number: "1234", Expiry: "12/27", CVV: "123"}},
		{"alpha number", service.CardDetails{Number: "1234abcd12341234", Expiry: "12/27", CVV: "123"}},
		{"bad expiry", service.CardDetails{Number: "1234123412341234", Expiry: "2027-12", CVV: "123"}},
		{"bad cvv", service.CardDetails{Number: "1234123412341234", Expiry: "12/27", CVV: "13"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Confirm(ctx, *draft, c.card)
			assert.ErrorIs(t, err, service.ErrInvalidCard)
		})
	}
}

func TestConfirm_RedrawsOnPNRCollision(t *testing.T) {
	store := &memStore{forceCollisions: 2}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)

	booking, err := svc.Confirm(ctx, *draft, validCard())
	require.NoError(t, err)
	assert.True(t, pnr.Valid(booking.PNR))
}

func TestConfirm_PNRExhaustion(t *testing.T) {
	store := &memStore{forceCollisions: 1000}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, *draft, validCard())
	assert.ErrorIs(t, err, service.ErrPNRAllocation)
	assert.Empty(t, store.bookings, "nothing may be persisted when allocation fails")
}

// ─── Tickets & Cancel ───────────────────────────────────────

func TestCancel_RemovesExactlyOnePreservingOrder(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)

	var pnrs []string
	for i := 0; i < 3; i++ {
		b, err := svc.Confirm(ctx, *draft, validCard())
		require.NoError(t, err)
		pnrs = append(pnrs, b.PNR)
	}

	require.NoError(t, svc.Cancel(ctx, pnrs[1]))

	tickets, err := svc.Tickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, pnrs[0], tickets[0].PNR)
	assert.Equal(t, pnrs[2], tickets[1].PNR)
}

func TestCancel_AbsentPNRLeavesStoreUntouched(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, *draft, validCard())
	require.NoError(t, err)

	err = svc.Cancel(ctx, "0000000000")
	assert.ErrorIs(t, err, service.ErrTicketNotFound)
	assert.Len(t, store.bookings, 1)
}

func TestTicket_ByPNR(t *testing.T) {
	store := &memStore{}
	svc := newService(t, store)
	ctx := context.Background()

	draft, err := svc.Quote(ctx, quoteRequest())
	require.NoError(t, err)
	booking, err := svc.Confirm(ctx, *draft, validCard())
	require.NoError(t, err)

	got, err := svc.Ticket(ctx, booking.PNR)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.Ticket(ctx, "1111111111")
	assert.ErrorIs(t, err, service.ErrTicketNotFound)
}
