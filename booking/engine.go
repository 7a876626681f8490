/*
engine.go - Availability, quoting and reservation writing

PURPOSE:
  The Engine is the query surface the UI layer consumes. It owns the
  read-path discipline (normalize stale holds before any query uses the
  data) and the write-path discipline (re-validate availability against a
  fresh read at reserve time; never trust an earlier answer).

ORDERING:
  All operations are synchronous and run to completion; within one process
  the read-check-append sequence in Reserve cannot interleave with another
  core operation. That guarantee does NOT survive multiple concurrent
  writers - deploying this behind a server handling simultaneous requests
  requires a serializing lock per room type or a conditional append that
  re-verifies occupancy in the same transaction.

TIME:
  The clock and id generator are injected so tests drive them. Defaults are
  time.Now and a uuid-backed id.

SEE ALSO:
  - lifecycle.go: Normalize, applied on every read
  - rates.go: the pure pricing path Reserve freezes into new bookings
*/
package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultHoldTTL is how long an unconfirmed hold blocks inventory.
const DefaultHoldTTL = 15 * time.Minute

// Engine answers availability and price queries and records reservations.
type Engine struct {
	Catalog *Catalog
	Store   Store

	// HoldTTL is the PENDING time-to-live. Defaults to DefaultHoldTTL.
	HoldTTL time.Duration

	// Now supplies the evaluation instant. Defaults to time.Now.
	Now func() time.Time

	// NewID generates booking identifiers. Defaults to uuid-backed ids.
	NewID func() string
}

// NewEngine wires an engine with default clock, id generation and TTL.
func NewEngine(catalog *Catalog, store Store) *Engine {
	return &Engine{
		Catalog: catalog,
		Store:   store,
		HoldTTL: DefaultHoldTTL,
		Now:     time.Now,
		NewID:   func() string { return "b_" + uuid.NewString() },
	}
}

// =============================================================================
// READ PATH
// =============================================================================

// Bookings returns the normalized booking collection.
func (e *Engine) Bookings(ctx context.Context) ([]Booking, error) {
	bookings, err := e.loadNormalized(ctx, e.Now())
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// loadNormalized loads the store, applies lazy expiry, and persists the
// result when at least one hold transitioned.
func (e *Engine) loadNormalized(ctx context.Context, now time.Time) ([]Booking, error) {
	bookings, err := e.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	normalized, changed := Normalize(now, bookings)
	if changed {
		if err := e.Store.Save(ctx, normalized); err != nil {
			return nil, fmt.Errorf("persist expired holds: %w", err)
		}
	}
	return normalized, nil
}

// =============================================================================
// AVAILABILITY CALCULATOR
// =============================================================================

// Availability returns how many units of a room type are free for the stay.
// Never negative.
func (e *Engine) Availability(ctx context.Context, roomTypeID string, stay Stay) (int, error) {
	if _, ok := e.Catalog.RoomType(roomTypeID); !ok {
		return 0, fmt.Errorf("%w: %s", ErrRoomTypeNotFound, roomTypeID)
	}

	now := e.Now()
	bookings, err := e.loadNormalized(ctx, now)
	if err != nil {
		return 0, err
	}
	return e.available(bookings, roomTypeID, stay, now), nil
}

func (e *Engine) available(bookings []Booking, roomTypeID string, stay Stay, now time.Time) int {
	if e.Catalog.BlackedOut(stay) {
		return 0
	}

	inventory := e.Catalog.InventoryFor(roomTypeID)
	occupied := 0
	for _, b := range bookings {
		if b.RoomTypeID != roomTypeID {
			continue
		}
		if !b.Counting(now) {
			continue
		}
		if b.Stay.Overlaps(stay) {
			occupied++
		}
	}

	if occupied > inventory {
		// Should be unreachable while the write path holds the non-oversell
		// invariant; clamp to a conservative answer and make the bug visible.
		log.Printf("WARNING: room %s occupied=%d exceeds inventory=%d for %s",
			roomTypeID, occupied, inventory, stay)
		return 0
	}
	return inventory - occupied
}

// =============================================================================
// PRICING
// =============================================================================

// Quote is a priced stay: the nightly breakdown plus the optional breakfast
// add-on. Deterministic for identical inputs; never reads the booking store.
type Quote struct {
	RoomTypeID     string
	Stay           Stay
	Nights         int
	Breakdown      []NightPrice
	BaseTotal      decimal.Decimal
	BreakfastTotal decimal.Decimal
	Total          decimal.Decimal
}

// Price quotes a stay for a room type. The weekday base is the fallback for
// nights no rate rule covers. Breakfast is costed only when requested.
func (e *Engine) Price(roomTypeID string, stay Stay, guests Guests, breakfast bool) (Quote, error) {
	rt, ok := e.Catalog.RoomType(roomTypeID)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrRoomTypeNotFound, roomTypeID)
	}

	breakdown, baseTotal := PriceStay(e.Catalog.Rules, roomTypeID, rt.BaseWeekday, stay)

	breakfastTotal := decimal.Zero
	if breakfast {
		breakfastTotal = BreakfastCost(rt, guests, stay.Nights())
	}

	return Quote{
		RoomTypeID:     roomTypeID,
		Stay:           stay,
		Nights:         stay.Nights(),
		Breakdown:      breakdown,
		BaseTotal:      baseTotal,
		BreakfastTotal: breakfastTotal,
		Total:          baseTotal.Add(breakfastTotal),
	}, nil
}

// =============================================================================
// RESERVATION WRITER
// =============================================================================

// ReserveInput is a hold request.
type ReserveInput struct {
	RoomTypeID string
	CheckIn    Date
	CheckOut   Date
	Guests     Guests
	Contact    Contact
	Breakfast  bool
}

// Reserve validates the request against a fresh availability read and
// appends a new PENDING hold. The price is recomputed here and frozen into
// the booking; a later rate change never rewrites it. On rejection no state
// is written.
func (e *Engine) Reserve(ctx context.Context, input ReserveInput) (Booking, error) {
	rt, ok := e.Catalog.RoomType(input.RoomTypeID)
	if !ok {
		return Booking{}, fmt.Errorf("%w: %s", ErrRoomTypeNotFound, input.RoomTypeID)
	}

	stay, err := NewStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return Booking{}, err
	}

	if input.Guests.Adults < 1 || input.Guests.Kids < 0 {
		return Booking{}, fmt.Errorf("%w: adults=%d kids=%d (need adults >= 1, kids >= 0)",
			ErrInvalidGuests, input.Guests.Adults, input.Guests.Kids)
	}

	if rt.Beds > 0 && input.Guests.Total() > rt.Beds {
		return Booking{}, &CapacityError{RoomTypeID: rt.ID, Guests: input.Guests.Total(), Beds: rt.Beds}
	}

	if stay.Nights() < rt.MinNights {
		return Booking{}, &MinStayError{RoomTypeID: rt.ID, Nights: stay.Nights(), MinNights: rt.MinNights}
	}

	now := e.Now()
	bookings, err := e.loadNormalized(ctx, now)
	if err != nil {
		return Booking{}, err
	}

	if e.available(bookings, rt.ID, stay, now) <= 0 {
		return Booking{}, &NoAvailabilityError{RoomTypeID: rt.ID, Stay: stay}
	}

	quote, err := e.Price(rt.ID, stay, input.Guests, input.Breakfast)
	if err != nil {
		return Booking{}, err
	}

	hold := Booking{
		ID:             e.NewID(),
		RoomTypeID:     rt.ID,
		Stay:           stay,
		Guests:         input.Guests,
		Contact:        input.Contact,
		Status:         StatusPending,
		ExpiresAt:      now.Add(e.holdTTL()),
		Breakfast:      input.Breakfast,
		BreakfastTotal: quote.BreakfastTotal,
		TotalPrice:     quote.Total,
		CreatedAt:      now,
	}

	bookings = append(bookings, hold)
	if err := e.Store.Save(ctx, bookings); err != nil {
		return Booking{}, fmt.Errorf("persist reservation: %w", err)
	}
	return hold, nil
}

func (e *Engine) holdTTL() time.Duration {
	if e.HoldTTL > 0 {
		return e.HoldTTL
	}
	return DefaultHoldTTL
}

// =============================================================================
// PAYMENT TRANSITIONS
// =============================================================================

// Confirm transitions an unexpired hold to PAID or CONFIRMED. This is the
// entry point for the external payment collaborator. Expiry is applied
// before the lookup, so a lapsed hold is already EXPIRED here and EXPIRED
// never reverts.
func (e *Engine) Confirm(ctx context.Context, id string, target Status) (Booking, error) {
	if target != StatusPaid && target != StatusConfirmed {
		return Booking{}, fmt.Errorf("%w: PENDING -> %s", ErrInvalidTransition, target)
	}

	now := e.Now()
	bookings, err := e.loadNormalized(ctx, now)
	if err != nil {
		return Booking{}, err
	}

	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if bookings[i].Status != StatusPending {
			return Booking{}, fmt.Errorf("%w: booking %s is %s", ErrNotPending, id, bookings[i].Status)
		}
		bookings[i].Status = target
		bookings[i].ExpiresAt = time.Time{}
		if err := e.Store.Save(ctx, bookings); err != nil {
			return Booking{}, fmt.Errorf("persist confirmation: %w", err)
		}
		return bookings[i], nil
	}
	return Booking{}, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
}
