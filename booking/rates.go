/*
rates.go - Nightly rate resolution and stay pricing

PURPOSE:
  Pure pricing functions. Given the catalog's rate rules, resolve the price
  of a single night, expand a stay into its nightly breakdown, and cost the
  breakfast add-on. Nothing here reads the booking store: pricing is
  deterministic and idempotent by construction.

RESOLUTION:
  Rules carry INCLUSIVE ranges [from, to] and are scanned in rule-set order;
  the first rule covering (room type, night) wins. The catalog loader
  guarantees ranges don't overlap per room type, so scan order never matters
  in practice.

SEE ALSO:
  - types.go: RateRule
  - engine.go: Quote, which assembles pricing + breakfast for the API
*/
package booking

import "github.com/shopspring/decimal"

// =============================================================================
// RATE RESOLVER
// =============================================================================

// ResolveRate returns the rule price for one night of a room type, scanning
// rules in order. ok is false when no rule covers the night; the caller must
// supply a fallback.
func ResolveRate(rules []RateRule, roomTypeID string, day Date) (decimal.Decimal, bool) {
	for _, r := range rules {
		if r.Covers(roomTypeID, day) {
			return r.Price, true
		}
	}
	return decimal.Zero, false
}

// =============================================================================
// PRICING CALCULATOR
// =============================================================================

// NightPrice is one line of a stay's price breakdown.
type NightPrice struct {
	Date  Date
	Price decimal.Decimal
}

// PriceStay expands the stay into one entry per night and sums the total.
// Each night is priced by the first covering rate rule, else by fallback
// (the room type's weekday base). The caller must pre-validate the stay;
// a stay built with NewStay always has at least one night.
func PriceStay(rules []RateRule, roomTypeID string, fallback decimal.Decimal, stay Stay) ([]NightPrice, decimal.Decimal) {
	nights := stay.Dates()
	breakdown := make([]NightPrice, len(nights))
	total := decimal.Zero
	for i, day := range nights {
		price, ok := ResolveRate(rules, roomTypeID, day)
		if !ok {
			price = fallback
		}
		breakdown[i] = NightPrice{Date: day, Price: price}
		total = total.Add(price)
	}
	return breakdown, total
}

// BreakfastCost prices the breakfast add-on for a party over a number of
// nights: per night, each adult and each kid pays the room type's respective
// breakfast price.
func BreakfastCost(rt RoomType, guests Guests, nights int) decimal.Decimal {
	perNight := rt.BreakfastPriceAdult.Mul(decimal.NewFromInt(int64(guests.Adults))).
		Add(rt.BreakfastPriceChild.Mul(decimal.NewFromInt(int64(guests.Kids))))
	return perNight.Mul(decimal.NewFromInt(int64(nights)))
}
