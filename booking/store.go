/*
store.go - Persistence contract for booking records

PURPOSE:
  Defines the interface between the engine and the durable store. The store
  is the sole source of truth for reservation state and round-trips the
  WHOLE collection on every operation: read-modify-write over a small,
  single-property record set rather than per-record updates.

CONTRACT:
  - Load returns every booking; insertion order is irrelevant to correctness.
  - Save replaces/extends the persisted set with the given collection.
  - All Booking fields must survive a Load(Save(x)) round trip losslessly,
    including Status and ExpiresAt as a comparable instant.
  - Records are never physically deleted; EXPIRED and CANCELLED are terminal
    statuses, not removals.

IMPLEMENTATIONS:
  - booking/store: in-memory, for tests and development
  - store/sqlite:  durable single-file store

SCALE NOTE:
  Whole-collection round-trips bound this design to small datasets. The
  first thing to replace when the engine outgrows one property is this
  contract, with per-record storage indexed by room type.
*/
package booking

import "context"

// Store persists the booking collection.
type Store interface {
	// Load returns all persisted bookings.
	Load(ctx context.Context) ([]Booking, error)

	// Save persists the full collection. Either all records land or none do.
	Save(ctx context.Context, bookings []Booking) error
}
