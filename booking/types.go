/*
Package booking provides the core room-reservation engine.

PURPOSE:
  This package contains the domain types and algorithms for a single-property
  reservation system: nightly rate resolution, stay pricing, inventory
  availability over half-open date ranges, and the lifecycle of time-limited
  holds that lazily expire on read.

KEY CONCEPTS IN THIS FILE (types.go):
  - RoomType:  Immutable reference data describing a bookable room class
  - RateRule:  A date-ranged nightly price override (inclusive range)
  - Catalog:   The loaded reference data set (rooms, rates, inventory)
  - Booking:   The only mutable entity; a hold, or a confirmed stay

DESIGN PRINCIPLES:
  1. Reference data is loaded once and never mutated by the engine
  2. Prices use decimal.Decimal to avoid floating-point errors
  3. Booking totals are frozen at creation; rate changes never rewrite history
  4. A booking counts against inventory only while its status says so

SEE ALSO:
  - date.go: Date and Stay (half-open range) primitives
  - rates.go: Rate resolution and stay pricing
  - lifecycle.go: Lazy hold expiry
  - engine.go: Availability and reservation writing
*/
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REFERENCE DATA - Immutable, loaded once
// =============================================================================

// RoomType describes a bookable class of rooms. Display metadata rides along
// for the API layer; the engine only reads prices, beds and minimum nights.
type RoomType struct {
	ID          string
	Name        string
	Description string

	// Nightly base prices; the weekday base is the pricing fallback when no
	// rate rule covers a night. Weekend pricing is expected to arrive baked
	// into rate rules by the upstream rate generator.
	BaseWeekday decimal.Decimal
	BaseWeekend decimal.Decimal

	// Beds is the sleeping capacity. Zero means "not specified" and disables
	// the capacity check.
	Beds int

	// MinNights is the shortest allowed stay. At least 1.
	MinNights int

	// Breakfast add-on, per person per night. Zero disables.
	BreakfastPriceAdult decimal.Decimal
	BreakfastPriceChild decimal.Decimal
}

// BaseMin returns the lower of the two base prices, for "from X/night" display.
func (rt RoomType) BaseMin() decimal.Decimal {
	if rt.BaseWeekend.IsPositive() && rt.BaseWeekend.LessThan(rt.BaseWeekday) {
		return rt.BaseWeekend
	}
	return rt.BaseWeekday
}

// RateRule prices the nights of one room type inside an INCLUSIVE date range
// [From, To]. Ranges for a given room type must not overlap; the catalog
// loader rejects rule sets that violate this.
type RateRule struct {
	RoomTypeID string
	From       Date
	To         Date
	Price      decimal.Decimal
}

// Covers reports whether the rule prices the given night.
func (r RateRule) Covers(roomTypeID string, day Date) bool {
	return r.RoomTypeID == roomTypeID &&
		r.From.BeforeOrEqual(day) && day.BeforeOrEqual(r.To)
}

// Catalog is the reference data feed: room types, rate rules, physical unit
// counts, and property-wide blackout dates. Loaded once before first use and
// never mutated by the engine.
type Catalog struct {
	RoomTypes []RoomType
	Rules     []RateRule
	Inventory map[string]int
	Blackouts []Date
}

// RoomType looks up a room type by id.
func (c *Catalog) RoomType(id string) (RoomType, bool) {
	for _, rt := range c.RoomTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RoomType{}, false
}

// InventoryFor returns the physical unit count for a room type, 0 if absent.
func (c *Catalog) InventoryFor(roomTypeID string) int {
	return c.Inventory[roomTypeID]
}

// BlackedOut reports whether any night of the stay is a blackout date.
func (c *Catalog) BlackedOut(stay Stay) bool {
	for _, d := range c.Blackouts {
		if stay.Contains(d) {
			return true
		}
	}
	return false
}

// =============================================================================
// BOOKING - The only mutable entity
// =============================================================================

// Status is the booking lifecycle state.
//
// State machine:
//
//	PENDING --(TTL elapses, observed on read)--> EXPIRED   (terminal)
//	PENDING --(payment collaborator confirms)--> PAID | CONFIRMED
//
// CANCELLED is reserved for future flows; it is a terminal, non-counting
// state that nothing currently produces.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusExpired   Status = "EXPIRED"
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Guests is the party composition of a booking.
type Guests struct {
	Adults int
	Kids   int
}

// Total returns the full head count.
func (g Guests) Total() int { return g.Adults + g.Kids }

// Contact carries the guest's contact fields. Opaque to the engine.
type Contact struct {
	FullName string
	Phone    string
	Email    string
	Comment  string
}

// Booking is a reservation record. Its economic fields (totals) are frozen at
// creation time and never recomputed from rates; only Status and ExpiresAt
// ever change after the append.
type Booking struct {
	ID         string
	RoomTypeID string
	Stay       Stay
	Guests     Guests
	Contact    Contact

	Status Status

	// ExpiresAt is set only while Status is PENDING.
	ExpiresAt time.Time

	Breakfast      bool
	BreakfastTotal decimal.Decimal
	TotalPrice     decimal.Decimal

	CreatedAt time.Time
}

// Counting reports whether the booking removes one unit from available
// inventory at the given instant: PAID and CONFIRMED always count, PENDING
// counts only while the hold is unexpired.
func (b Booking) Counting(now time.Time) bool {
	switch b.Status {
	case StatusPaid, StatusConfirmed:
		return true
	case StatusPending:
		return b.ExpiresAt.After(now)
	default:
		return false
	}
}
