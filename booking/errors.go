/*
errors.go - Centralized error types for the reservation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Rejections are values: every operation returns a definite outcome
  (success or a specific rejection reason), never panics on bad input.

ERROR CATEGORIES:
  1. Validation errors - malformed input (dates, guest counts)
  2. Rejections - a precondition of reserve/confirm failed
  3. Reference errors - unknown room type or booking

USAGE:
  Callers branch with errors.Is / errors.As:

    if errors.Is(err, booking.ErrNoAvailability) { ... }

    var capErr *booking.CapacityError
    if errors.As(err, &capErr) { ... capErr.Beds ... }

SEE ALSO:
  - engine.go: Produces these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidStay is returned when check-out is not after check-in.
	ErrInvalidStay = errors.New("invalid stay: check-out must be after check-in")

	// ErrInvalidGuests is returned when guest counts are out of range
	// (at least one adult, kids may not be negative).
	ErrInvalidGuests = errors.New("invalid guest counts")

	// ErrRoomTypeNotFound is returned when a room type id is not in the catalog.
	ErrRoomTypeNotFound = errors.New("room type not found")

	// ErrBookingNotFound is returned when a booking id is unknown to the store.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCapacityExceeded is returned when the guest total exceeds the room's beds.
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")

	// ErrMinStayNotMet is returned when the stay is shorter than the room's minimum.
	ErrMinStayNotMet = errors.New("stay shorter than minimum nights")

	// ErrNoAvailability is returned when no unit is free for the requested stay.
	ErrNoAvailability = errors.New("no availability for requested dates")

	// ErrNotPending is returned when a status transition requires an active hold.
	ErrNotPending = errors.New("booking is not an active hold")

	// ErrInvalidTransition is returned for a target status the state machine
	// does not define (only PAID and CONFIRMED follow PENDING).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// =============================================================================
// STRUCTURED REJECTIONS - Carry the numbers behind the "no"
// =============================================================================

// CapacityError reports a guest total that does not fit the room.
type CapacityError struct {
	RoomTypeID string
	Guests     int
	Beds       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("room %s sleeps %d, requested %d guests", e.RoomTypeID, e.Beds, e.Guests)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// MinStayError reports a stay shorter than the room type's minimum.
type MinStayError struct {
	RoomTypeID string
	Nights     int
	MinNights  int
}

func (e *MinStayError) Error() string {
	return fmt.Sprintf("room %s requires at least %d nights, requested %d", e.RoomTypeID, e.MinNights, e.Nights)
}

func (e *MinStayError) Unwrap() error { return ErrMinStayNotMet }

// NoAvailabilityError reports an exhausted inventory for a stay.
type NoAvailabilityError struct {
	RoomTypeID string
	Stay       Stay
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("room %s has no free units for %s", e.RoomTypeID, e.Stay)
}

func (e *NoAvailabilityError) Unwrap() error { return ErrNoAvailability }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRejection returns true if the error is a definite rejection of valid-form
// input (as opposed to malformed input or an infrastructure failure).
func IsRejection(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrMinStayNotMet) ||
		errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrNotPending)
}

// IsValidation returns true if the error is due to malformed client input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidStay) ||
		errors.Is(err, ErrInvalidGuests) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsNotFound returns true if the error indicates a missing reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomTypeNotFound) ||
		errors.Is(err, ErrBookingNotFound)
}
