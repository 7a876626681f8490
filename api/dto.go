/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// RoomTypeDTO represents a room type with its inventory count.
type RoomTypeDTO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	BaseWeekday         float64 `json:"base_weekday"`
	BaseWeekend         float64 `json:"base_weekend,omitempty"`
	BaseMin             float64 `json:"base_min"`
	Beds                int     `json:"beds"`
	MinNights           int     `json:"min_nights"`
	BreakfastPriceAdult float64 `json:"breakfast_price_adult,omitempty"`
	BreakfastPriceChild float64 `json:"breakfast_price_child,omitempty"`
	Inventory           int     `json:"inventory"`
}

// AvailabilityDTO answers "how many rooms of type X are free for [a,b)".
type AvailabilityDTO struct {
	RoomTypeID string `json:"room_type_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Available  int    `json:"available"`
}

// NightPriceDTO is one line of a quote breakdown.
type NightPriceDTO struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// QuoteDTO is a priced stay.
type QuoteDTO struct {
	RoomTypeID     string          `json:"room_type_id"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Nights         int             `json:"nights"`
	Breakdown      []NightPriceDTO `json:"breakdown"`
	BaseTotal      float64         `json:"base_total"`
	BreakfastTotal float64         `json:"breakfast_total,omitempty"`
	Total          float64         `json:"total"`
}

// BookingDTO represents a booking record in API responses.
type BookingDTO struct {
	ID             string  `json:"id"`
	RoomTypeID     string  `json:"room_type_id"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	Adults         int     `json:"adults"`
	Kids           int     `json:"kids"`
	FullName       string  `json:"full_name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Comment        string  `json:"comment,omitempty"`
	Status         string  `json:"status"`
	ExpiresAt      string  `json:"expires_at,omitempty"`
	Breakfast      bool    `json:"breakfast"`
	BreakfastTotal float64 `json:"breakfast_total,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// CreateBookingRequest is the request to place a hold.
type CreateBookingRequest struct {
	RoomTypeID string `json:"room_type_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Adults     int    `json:"adults"`
	Kids       int    `json:"kids"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Comment    string `json:"comment"`
	Breakfast  bool   `json:"breakfast"`
}

// ConfirmBookingRequest is the payment collaborator's transition request.
type ConfirmBookingRequest struct {
	Status string `json:"status"` // "PAID" or "CONFIRMED"
}

// ErrorResponse is the JSON shape of every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
