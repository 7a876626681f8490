package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/booking-engine/api"
	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/booking/store"
	"github.com/warp/booking-engine/metrics"
)

// =============================================================================
// TEST SERVER
// =============================================================================

// newTestServer stands up the full router over a memory store, a fixed clock
// and sequential ids. Each call gets its own metrics registry.
func newTestServer(t *testing.T, inventory int) (*httptest.Server, *booking.Engine) {
	t.Helper()

	catalog := &booking.Catalog{
		RoomTypes: []booking.RoomType{{
			ID:                  "std",
			Name:                "Standard",
			BaseWeekday:         decimal.NewFromInt(80),
			Beds:                2,
			MinNights:           1,
			BreakfastPriceAdult: decimal.NewFromInt(450),
			BreakfastPriceChild: decimal.NewFromInt(250),
		}},
		Rules: []booking.RateRule{{
			RoomTypeID: "std",
			From:       booking.MustDate("2024-01-10"),
			To:         booking.MustDate("2024-01-11"),
			Price:      decimal.NewFromInt(100),
		}},
		Inventory: map[string]int{"std": inventory},
	}

	engine := booking.NewEngine(catalog, store.NewMemory())
	engine.Now = func() time.Time {
		return time.Date(2024, time.January, 9, 12, 0, 0, 0, time.UTC)
	}
	seq := 0
	engine.NewID = func() string {
		seq++
		return fmt.Sprintf("b_%d", seq)
	}

	registry := prometheus.NewRegistry()
	handler := api.NewHandler(engine, metrics.New(registry))
	srv := httptest.NewServer(api.NewRouter(handler, registry))
	t.Cleanup(srv.Close)

	return srv, engine
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createRequest() api.CreateBookingRequest {
	return api.CreateBookingRequest{
		RoomTypeID: "std",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
		Adults:     2,
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
	}
}

// =============================================================================
// ROOM ENDPOINT TESTS
// =============================================================================

func TestListRooms(t *testing.T) {
	srv, _ := newTestServer(t, 4)

	var rooms []api.RoomTypeDTO
	status := getJSON(t, srv.URL+"/api/rooms", &rooms)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, rooms, 1)
	assert.Equal(t, "std", rooms[0].ID)
	assert.Equal(t, 4, rooms[0].Inventory)
	assert.Equal(t, 80.0, rooms[0].BaseWeekday)
}

func TestGetAvailability(t *testing.T) {
	srv, _ := newTestServer(t, 2)

	var dto api.AvailabilityDTO
	status := getJSON(t, srv.URL+"/api/rooms/std/availability?check_in=2024-01-10&check_out=2024-01-12", &dto)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "std", dto.RoomTypeID)
	assert.Equal(t, 2, dto.Available)
}

func TestGetAvailability_BadInput(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	// Missing dates
	status := getJSON(t, srv.URL+"/api/rooms/std/availability", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Inverted range
	status = getJSON(t, srv.URL+"/api/rooms/std/availability?check_in=2024-01-12&check_out=2024-01-10", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown room type
	status = getJSON(t, srv.URL+"/api/rooms/lux/availability?check_in=2024-01-10&check_out=2024-01-12", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetQuote(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	// GIVEN: Rule 100 covers 2024-01-10..11 inclusive, weekday base 80
	// WHEN: Quoting three nights from the 10th
	var quote api.QuoteDTO
	status := getJSON(t, srv.URL+"/api/rooms/std/quote?check_in=2024-01-10&check_out=2024-01-13", &quote)

	// THEN: Two rule nights plus one fallback night
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, quote.Nights)
	require.Len(t, quote.Breakdown, 3)
	assert.Equal(t, 100.0, quote.Breakdown[0].Price)
	assert.Equal(t, 100.0, quote.Breakdown[1].Price)
	assert.Equal(t, 80.0, quote.Breakdown[2].Price)
	assert.Equal(t, 280.0, quote.Total)
}

func TestGetQuote_WithBreakfast(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	var quote api.QuoteDTO
	status := getJSON(t, srv.URL+"/api/rooms/std/quote?check_in=2024-01-10&check_out=2024-01-12&adults=2&kids=1&breakfast=true", &quote)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 200.0, quote.BaseTotal)
	assert.Equal(t, 2300.0, quote.BreakfastTotal)
	assert.Equal(t, 2500.0, quote.Total)
}

// =============================================================================
// BOOKING ENDPOINT TESTS
// =============================================================================

func TestCreateBooking(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	var dto api.BookingDTO
	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), &dto)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "b_1", dto.ID)
	assert.Equal(t, "PENDING", dto.Status)
	assert.Equal(t, "2024-01-10", dto.CheckIn)
	assert.Equal(t, "2024-01-12", dto.CheckOut)
	assert.NotEmpty(t, dto.ExpiresAt)
	assert.Equal(t, 200.0, dto.TotalPrice)
}

func TestCreateBooking_ConflictWhenFull(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), nil)
	require.Equal(t, http.StatusCreated, status)

	var errResp api.ErrorResponse
	status = postJSON(t, srv.URL+"/api/bookings", createRequest(), &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Reservation rejected", errResp.Error)
}

func TestCreateBooking_CapacityConflict(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	req := createRequest()
	req.Adults = 2
	req.Kids = 1 // 3 heads, 2 beds

	status := postJSON(t, srv.URL+"/api/bookings", req, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCreateBooking_BadInput(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	// Malformed date
	req := createRequest()
	req.CheckIn = "10/01/2024"
	status := postJSON(t, srv.URL+"/api/bookings", req, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// No adults
	req = createRequest()
	req.Adults = 0
	status = postJSON(t, srv.URL+"/api/bookings", req, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown room type
	req = createRequest()
	req.RoomTypeID = "lux"
	status = postJSON(t, srv.URL+"/api/bookings", req, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConfirmBooking(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	var created api.BookingDTO
	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), &created)
	require.Equal(t, http.StatusCreated, status)

	var confirmed api.BookingDTO
	status = postJSON(t, srv.URL+"/api/bookings/"+created.ID+"/confirm",
		api.ConfirmBookingRequest{Status: "PAID"}, &confirmed)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PAID", confirmed.Status)
	assert.Empty(t, confirmed.ExpiresAt)
}

func TestConfirmBooking_LapsedHold(t *testing.T) {
	srv, engine := newTestServer(t, 1)

	var created api.BookingDTO
	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), &created)
	require.Equal(t, http.StatusCreated, status)

	// Move the clock past the hold's TTL
	expiresAt, err := time.Parse(time.RFC3339, created.ExpiresAt)
	require.NoError(t, err)
	engine.Now = func() time.Time { return expiresAt.Add(time.Second) }

	status = postJSON(t, srv.URL+"/api/bookings/"+created.ID+"/confirm",
		api.ConfirmBookingRequest{Status: "PAID"}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// The lapsed hold frees the window for new reservations
	var dto api.AvailabilityDTO
	status = getJSON(t, srv.URL+"/api/rooms/std/availability?check_in=2024-01-10&check_out=2024-01-12", &dto)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, dto.Available)
}

func TestConfirmBooking_InvalidTarget(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	var created api.BookingDTO
	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), &created)
	require.Equal(t, http.StatusCreated, status)

	status = postJSON(t, srv.URL+"/api/bookings/"+created.ID+"/confirm",
		api.ConfirmBookingRequest{Status: "CANCELLED"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestConfirmBooking_Unknown(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	status := postJSON(t, srv.URL+"/api/bookings/b_nope/confirm",
		api.ConfirmBookingRequest{Status: "PAID"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListBookings(t *testing.T) {
	srv, _ := newTestServer(t, 2)

	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), nil)
	require.Equal(t, http.StatusCreated, status)

	var bookings []api.BookingDTO
	status = getJSON(t, srv.URL+"/api/bookings", &bookings)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b_1", bookings[0].ID)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	var body map[string]string
	status := getJSON(t, srv.URL+"/healthz", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsExposition(t *testing.T) {
	srv, _ := newTestServer(t, 1)

	status := postJSON(t, srv.URL+"/api/bookings", createRequest(), nil)
	require.Equal(t, http.StatusCreated, status)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "booking_reservations_created_total 1")
}
