/*
Package factory provides TOML to Go catalog conversion.

PURPOSE:
  Converts a TOML catalog definition into a booking.Catalog. This enables
  room and rate configuration without code changes - the property operator
  edits one file, and the factory builds the proper Go structs.

TOML SCHEMA:
  [[room_types]]
  id = "std"
  name = "Standard"
  description = "Cosy double room"
  base_weekday = 4200
  base_weekend = 4900
  beds = 2
  min_nights = 1
  breakfast_price_adult = 450
  breakfast_price_child = 250

  [[rates]]
  room_type_id = "std"
  from = "2024-06-01"
  to = "2024-08-31"
  price = 5200

  [inventory]
  std = 4

  blackout_dates = ["2024-12-31"]

INTEGRITY:
  Missing reference data is a startup fault, surfaced loudly: an empty room
  type list, a rate or inventory entry naming an unknown room, an inverted
  rate range, or two overlapping rate ranges for one room type all fail the
  load. Downstream computations get a catalog they can trust or no catalog
  at all.

USAGE:
  catalog, err := factory.Load("./catalog.toml")
  if err != nil {
      log.Fatal(err)
  }
  engine := booking.NewEngine(catalog, store)

SEE ALSO:
  - booking/types.go: Catalog, RoomType, RateRule definitions
*/
package factory

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/booking"
)

// ErrInvalidCatalog is wrapped by every integrity failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// =============================================================================
// TOML SCHEMA TYPES
// =============================================================================

// CatalogTOML is the file-level schema.
type CatalogTOML struct {
	RoomTypes     []RoomTypeTOML `toml:"room_types"`
	Rates         []RateTOML     `toml:"rates"`
	Inventory     map[string]int `toml:"inventory"`
	BlackoutDates []string       `toml:"blackout_dates"`
}

// RoomTypeTOML is one room type entry. Prices are whole currency units.
type RoomTypeTOML struct {
	ID                  string `toml:"id"`
	Name                string `toml:"name"`
	Description         string `toml:"description"`
	BaseWeekday         int64  `toml:"base_weekday"`
	BaseWeekend         int64  `toml:"base_weekend"`
	Beds                int    `toml:"beds"`
	MinNights           int    `toml:"min_nights"`
	BreakfastPriceAdult int64  `toml:"breakfast_price_adult"`
	BreakfastPriceChild int64  `toml:"breakfast_price_child"`
}

// RateTOML is one date-ranged nightly rate. The range is inclusive on both
// ends, matching the upstream rate generator's compressed output.
type RateTOML struct {
	RoomTypeID string `toml:"room_type_id"`
	From       string `toml:"from"`
	To         string `toml:"to"`
	Price      int64  `toml:"price"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and validates a catalog file.
func Load(path string) (*booking.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(string(data))
}

// Parse builds a validated catalog from TOML text.
func Parse(data string) (*booking.Catalog, error) {
	var file CatalogTOML
	if err := toml.Unmarshal([]byte(data), &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return build(file)
}

func build(file CatalogTOML) (*booking.Catalog, error) {
	if len(file.RoomTypes) == 0 {
		return nil, fmt.Errorf("%w: no room types defined", ErrInvalidCatalog)
	}

	catalog := &booking.Catalog{
		Inventory: make(map[string]int),
	}

	known := make(map[string]bool)
	for _, rt := range file.RoomTypes {
		if rt.ID == "" {
			return nil, fmt.Errorf("%w: room type with empty id", ErrInvalidCatalog)
		}
		if known[rt.ID] {
			return nil, fmt.Errorf("%w: duplicate room type %q", ErrInvalidCatalog, rt.ID)
		}
		known[rt.ID] = true

		if rt.BaseWeekday <= 0 {
			return nil, fmt.Errorf("%w: room type %q needs a positive base_weekday", ErrInvalidCatalog, rt.ID)
		}

		minNights := rt.MinNights
		if minNights < 1 {
			minNights = 1
		}

		catalog.RoomTypes = append(catalog.RoomTypes, booking.RoomType{
			ID:                  rt.ID,
			Name:                rt.Name,
			Description:         rt.Description,
			BaseWeekday:         decimal.NewFromInt(rt.BaseWeekday),
			BaseWeekend:         decimal.NewFromInt(rt.BaseWeekend),
			Beds:                rt.Beds,
			MinNights:           minNights,
			BreakfastPriceAdult: decimal.NewFromInt(rt.BreakfastPriceAdult),
			BreakfastPriceChild: decimal.NewFromInt(rt.BreakfastPriceChild),
		})
	}

	for i, r := range file.Rates {
		if !known[r.RoomTypeID] {
			return nil, fmt.Errorf("%w: rate %d references unknown room type %q", ErrInvalidCatalog, i, r.RoomTypeID)
		}
		from, err := booking.ParseDate(r.From)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %d: %v", ErrInvalidCatalog, i, err)
		}
		to, err := booking.ParseDate(r.To)
		if err != nil {
			return nil, fmt.Errorf("%w: rate %d: %v", ErrInvalidCatalog, i, err)
		}
		if to.Before(from) {
			return nil, fmt.Errorf("%w: rate %d: range %s..%s is inverted", ErrInvalidCatalog, i, from, to)
		}
		if r.Price <= 0 {
			return nil, fmt.Errorf("%w: rate %d needs a positive price", ErrInvalidCatalog, i)
		}

		catalog.Rules = append(catalog.Rules, booking.RateRule{
			RoomTypeID: r.RoomTypeID,
			From:       from,
			To:         to,
			Price:      decimal.NewFromInt(r.Price),
		})
	}

	if err := checkRuleOverlaps(catalog.Rules); err != nil {
		return nil, err
	}

	for id, count := range file.Inventory {
		if !known[id] {
			return nil, fmt.Errorf("%w: inventory references unknown room type %q", ErrInvalidCatalog, id)
		}
		if count < 0 {
			return nil, fmt.Errorf("%w: inventory for %q is negative", ErrInvalidCatalog, id)
		}
		catalog.Inventory[id] = count
	}

	for _, s := range file.BlackoutDates {
		d, err := booking.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: blackout date: %v", ErrInvalidCatalog, err)
		}
		catalog.Blackouts = append(catalog.Blackouts, d)
	}

	return catalog, nil
}

// checkRuleOverlaps enforces one effective price per room-type-per-date.
// Relying on scan order to break ties would hide a data error; rejecting the
// rule set at load time surfaces it.
func checkRuleOverlaps(rules []booking.RateRule) error {
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			a, b := rules[i], rules[j]
			if a.RoomTypeID != b.RoomTypeID {
				continue
			}
			// Inclusive ranges overlap when each starts before the other ends.
			if a.From.BeforeOrEqual(b.To) && b.From.BeforeOrEqual(a.To) {
				return fmt.Errorf("%w: overlapping rates for room type %q: %s..%s and %s..%s",
					ErrInvalidCatalog, a.RoomTypeID, a.From, a.To, b.From, b.To)
			}
		}
	}
	return nil
}
