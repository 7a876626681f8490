// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/booking-engine/booking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	bookings []booking.Booking
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the collection; callers never share backing arrays
// with the store.
func (m *Memory) Load(_ context.Context) ([]booking.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]booking.Booking, len(m.bookings))
	copy(result, m.bookings)
	return result, nil
}

// Save replaces the collection wholesale.
func (m *Memory) Save(_ context.Context, bookings []booking.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings = make([]booking.Booking, len(bookings))
	copy(m.bookings, bookings)
	return nil
}
