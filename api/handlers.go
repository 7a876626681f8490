/*
handlers.go - HTTP API handlers for the reservation engine

PURPOSE:
  Exposes the reservation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Rooms:
    GET  /api/rooms                          List room types + inventory
    GET  /api/rooms/{id}/availability        Free units for a stay
    GET  /api/rooms/{id}/quote               Priced stay breakdown

  Bookings:
    GET  /api/bookings                       Normalized booking list
    POST /api/bookings                       Place a hold
    POST /api/bookings/{id}/confirm          Payment collaborator transition

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown room type or booking
  - 409: Rejection (no availability, capacity, minimum stay, lapsed hold)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/metrics"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *booking.Engine
	Metrics *metrics.Metrics
}

// NewHandler creates a new handler around the engine.
func NewHandler(engine *booking.Engine, m *metrics.Metrics) *Handler {
	return &Handler{Engine: engine, Metrics: m}
}

// =============================================================================
// ROOM HANDLERS
// =============================================================================

// ListRooms returns all room types with their inventory counts.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	catalog := h.Engine.Catalog
	dtos := make([]RoomTypeDTO, len(catalog.RoomTypes))
	for i, rt := range catalog.RoomTypes {
		dtos[i] = RoomTypeDTO{
			ID:                  rt.ID,
			Name:                rt.Name,
			Description:         rt.Description,
			BaseWeekday:         rt.BaseWeekday.InexactFloat64(),
			BaseWeekend:         rt.BaseWeekend.InexactFloat64(),
			BaseMin:             rt.BaseMin().InexactFloat64(),
			Beds:                rt.Beds,
			MinNights:           rt.MinNights,
			BreakfastPriceAdult: rt.BreakfastPriceAdult.InexactFloat64(),
			BreakfastPriceChild: rt.BreakfastPriceChild.InexactFloat64(),
			Inventory:           catalog.InventoryFor(rt.ID),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAvailability returns the free unit count for a room type and stay.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stay, ok := h.parseStay(w, r)
	if !ok {
		return
	}

	h.Metrics.AvailabilityQueries.Inc()

	available, err := h.Engine.Availability(r.Context(), id, stay)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityDTO{
		RoomTypeID: id,
		CheckIn:    stay.CheckIn.String(),
		CheckOut:   stay.CheckOut.String(),
		Available:  available,
	})
}

// GetQuote returns the nightly price breakdown and total for a stay.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stay, ok := h.parseStay(w, r)
	if !ok {
		return
	}

	adults := intQuery(r, "adults", 1)
	kids := intQuery(r, "kids", 0)
	breakfast := r.URL.Query().Get("breakfast") == "true"

	h.Metrics.QuoteQueries.Inc()

	quote, err := h.Engine.Price(id, stay, booking.Guests{Adults: adults, Kids: kids}, breakfast)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	breakdown := make([]NightPriceDTO, len(quote.Breakdown))
	for i, np := range quote.Breakdown {
		breakdown[i] = NightPriceDTO{Date: np.Date.String(), Price: np.Price.InexactFloat64()}
	}

	writeJSON(w, http.StatusOK, QuoteDTO{
		RoomTypeID:     quote.RoomTypeID,
		CheckIn:        stay.CheckIn.String(),
		CheckOut:       stay.CheckOut.String(),
		Nights:         quote.Nights,
		Breakdown:      breakdown,
		BaseTotal:      quote.BaseTotal.InexactFloat64(),
		BreakfastTotal: quote.BreakfastTotal.InexactFloat64(),
		Total:          quote.Total.InexactFloat64(),
	})
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// ListBookings returns the normalized booking collection.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Engine.Bookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load bookings", err)
		return
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = bookingDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateBooking places a new hold.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in", err)
		return
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out", err)
		return
	}

	b, err := h.Engine.Reserve(r.Context(), booking.ReserveInput{
		RoomTypeID: req.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     booking.Guests{Adults: req.Adults, Kids: req.Kids},
		Contact: booking.Contact{
			FullName: req.FullName,
			Phone:    req.Phone,
			Email:    req.Email,
			Comment:  req.Comment,
		},
		Breakfast: req.Breakfast,
	})
	if err != nil {
		h.Metrics.ReservationsRejected.WithLabelValues(rejectionReason(err)).Inc()
		h.writeDomainError(w, err)
		return
	}

	h.Metrics.ReservationsCreated.Inc()
	writeJSON(w, http.StatusCreated, bookingDTO(b))
}

// ConfirmBooking transitions a hold to PAID or CONFIRMED.
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	b, err := h.Engine.Confirm(r.Context(), id, booking.Status(req.Status))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookingDTO(b))
}

// Health is a liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) parseStay(w http.ResponseWriter, r *http.Request) (booking.Stay, bool) {
	checkIn, err := booking.ParseDate(r.URL.Query().Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in", err)
		return booking.Stay{}, false
	}
	checkOut, err := booking.ParseDate(r.URL.Query().Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_out", err)
		return booking.Stay{}, false
	}
	stay, err := booking.NewStay(checkIn, checkOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stay", err)
		return booking.Stay{}, false
	}
	return stay, true
}

// writeDomainError maps engine errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case booking.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case booking.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case booking.IsRejection(err):
		writeError(w, http.StatusConflict, "Reservation rejected", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrCapacityExceeded):
		return metrics.ReasonCapacity
	case errors.Is(err, booking.ErrMinStayNotMet):
		return metrics.ReasonMinStay
	case errors.Is(err, booking.ErrNoAvailability):
		return metrics.ReasonNoAvailability
	default:
		return metrics.ReasonValidation
	}
}

func bookingDTO(b booking.Booking) BookingDTO {
	dto := BookingDTO{
		ID:             b.ID,
		RoomTypeID:     b.RoomTypeID,
		CheckIn:        b.Stay.CheckIn.String(),
		CheckOut:       b.Stay.CheckOut.String(),
		Adults:         b.Guests.Adults,
		Kids:           b.Guests.Kids,
		FullName:       b.Contact.FullName,
		Phone:          b.Contact.Phone,
		Email:          b.Contact.Email,
		Comment:        b.Contact.Comment,
		Status:         string(b.Status),
		Breakfast:      b.Breakfast,
		BreakfastTotal: b.BreakfastTotal.InexactFloat64(),
		TotalPrice:     b.TotalPrice.InexactFloat64(),
	}
	if !b.ExpiresAt.IsZero() {
		dto.ExpiresAt = b.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if !b.CreatedAt.IsZero() {
		dto.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
