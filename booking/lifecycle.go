/*
lifecycle.go - Lazy hold expiry

PURPOSE:
  Holds (PENDING bookings) carry a TTL but there is no timer and no
  background sweep: expiry is observed lazily, the first time any read
  touches the collection after the TTL elapsed. Normalize is that
  observation, factored out as a pure function with an explicit clock so
  the hidden wall-clock read of the original design disappears.

CONTRACT:
  - Pure: the input slice is never mutated; a normalized copy is returned.
  - Idempotent: Normalize(now, Normalize(now, S)) == Normalize(now, S).
  - Narrow: only PENDING holds whose ExpiresAt has elapsed transition, and
    only to EXPIRED. PAID, CONFIRMED, CANCELLED and EXPIRED are untouched.
  - changed signals whether the caller should persist the result; a
    no-transition pass must not trigger a redundant write.

SEE ALSO:
  - engine.go: applies Normalize on every store read, persists when changed
*/
package booking

import "time"

// Normalize transitions stale holds to EXPIRED as of the given instant.
// A hold whose ExpiresAt equals now is already stale.
func Normalize(now time.Time, bookings []Booking) ([]Booking, bool) {
	normalized := make([]Booking, len(bookings))
	copy(normalized, bookings)

	changed := false
	for i := range normalized {
		b := &normalized[i]
		if b.Status == StatusPending && !b.ExpiresAt.IsZero() && !b.ExpiresAt.After(now) {
			b.Status = StatusExpired
			changed = true
		}
	}
	return normalized, changed
}
