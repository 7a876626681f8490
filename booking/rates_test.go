package booking_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/booking"
)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func rule(roomTypeID, from, to string, p int64) booking.RateRule {
	return booking.RateRule{
		RoomTypeID: roomTypeID,
		From:       booking.MustDate(from),
		To:         booking.MustDate(to),
		Price:      price(p),
	}
}

// =============================================================================
// RATE RESOLVER TESTS
// =============================================================================

func TestResolveRate_InclusiveRangeEnds(t *testing.T) {
	rules := []booking.RateRule{rule("std", "2024-01-10", "2024-01-11", 100)}

	for _, day := range []string{"2024-01-10", "2024-01-11"} {
		if _, ok := booking.ResolveRate(rules, "std", booking.MustDate(day)); !ok {
			t.Errorf("expected rule to cover %s (range is inclusive both ends)", day)
		}
	}
	if _, ok := booking.ResolveRate(rules, "std", booking.MustDate("2024-01-12")); ok {
		t.Error("expected no rule past the inclusive end")
	}
}

func TestResolveRate_NoMatch(t *testing.T) {
	rules := []booking.RateRule{rule("std", "2024-01-10", "2024-01-11", 100)}

	// Wrong room type
	if _, ok := booking.ResolveRate(rules, "lux", booking.MustDate("2024-01-10")); ok {
		t.Error("expected no match for a different room type")
	}
	// No rules at all
	if _, ok := booking.ResolveRate(nil, "std", booking.MustDate("2024-01-10")); ok {
		t.Error("expected no match with an empty rule set")
	}
}

func TestResolveRate_FirstMatchWins(t *testing.T) {
	// The catalog loader rejects overlapping rules, but the resolver's own
	// contract is rule-set order.
	rules := []booking.RateRule{
		rule("std", "2024-01-01", "2024-01-31", 100),
		rule("std", "2024-01-10", "2024-01-20", 999),
	}

	p, ok := booking.ResolveRate(rules, "std", booking.MustDate("2024-01-15"))
	if !ok {
		t.Fatal("expected a match")
	}
	if !p.Equal(price(100)) {
		t.Errorf("expected first rule's price 100, got %v", p)
	}
}

// =============================================================================
// PRICING CALCULATOR TESTS
// =============================================================================

func TestPriceStay_RuleThenFallback(t *testing.T) {
	// GIVEN: Rule {std, 2024-01-10..2024-01-11, 100} (inclusive: two dates),
	//        fallback 80
	// WHEN: Pricing the stay 2024-01-10..2024-01-13 (three nights)
	// THEN: Breakdown is [100, 100, 80], total 280

	rules := []booking.RateRule{rule("std", "2024-01-10", "2024-01-11", 100)}
	stay := mustStay(t, "2024-01-10", "2024-01-13")

	breakdown, total := booking.PriceStay(rules, "std", price(80), stay)

	if len(breakdown) != 3 {
		t.Fatalf("expected 3 nightly entries, got %d", len(breakdown))
	}
	want := []int64{100, 100, 80}
	for i, np := range breakdown {
		if !np.Price.Equal(price(want[i])) {
			t.Errorf("night %s: expected %d, got %v", np.Date, want[i], np.Price)
		}
	}
	if !total.Equal(price(280)) {
		t.Errorf("expected total 280, got %v", total)
	}
}

func TestPriceStay_AllFallback(t *testing.T) {
	stay := mustStay(t, "2024-03-01", "2024-03-03")

	breakdown, total := booking.PriceStay(nil, "std", price(80), stay)

	if len(breakdown) != 2 {
		t.Fatalf("expected 2 nights, got %d", len(breakdown))
	}
	if !total.Equal(price(160)) {
		t.Errorf("expected total 160, got %v", total)
	}
}

func TestPriceStay_Deterministic(t *testing.T) {
	rules := []booking.RateRule{
		rule("std", "2024-01-10", "2024-01-11", 100),
		rule("std", "2024-02-01", "2024-02-29", 120),
	}
	stay := mustStay(t, "2024-01-09", "2024-01-14")

	b1, t1 := booking.PriceStay(rules, "std", price(80), stay)
	b2, t2 := booking.PriceStay(rules, "std", price(80), stay)

	if !t1.Equal(t2) {
		t.Errorf("totals differ across identical calls: %v vs %v", t1, t2)
	}
	if len(b1) != len(b2) {
		t.Fatalf("breakdown lengths differ: %d vs %d", len(b1), len(b2))
	}
	for i := range b1 {
		if !b1[i].Date.Equal(b2[i].Date) || !b1[i].Price.Equal(b2[i].Price) {
			t.Errorf("breakdown entry %d differs: %+v vs %+v", i, b1[i], b2[i])
		}
	}
}

// =============================================================================
// BREAKFAST ADD-ON TESTS
// =============================================================================

func TestBreakfastCost(t *testing.T) {
	rt := booking.RoomType{
		ID:                  "std",
		BreakfastPriceAdult: price(450),
		BreakfastPriceChild: price(250),
	}

	// 2 adults + 1 kid, 3 nights: (2*450 + 1*250) * 3 = 3450
	got := booking.BreakfastCost(rt, booking.Guests{Adults: 2, Kids: 1}, 3)
	if !got.Equal(price(3450)) {
		t.Errorf("expected 3450, got %v", got)
	}

	// No kids
	got = booking.BreakfastCost(rt, booking.Guests{Adults: 1}, 2)
	if !got.Equal(price(900)) {
		t.Errorf("expected 900, got %v", got)
	}
}
