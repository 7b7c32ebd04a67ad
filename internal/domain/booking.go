// Package domain contains the core data types for the hotel booking widget.
// It is imported by every other internal package (repo, service, handler).
package domain

import (
	"math"
	"strings"
	"time"
)

// Booking is a confirmed reservation of a room or hall.
// Bookings are never updated in place: they are created, persisted, and
// eventually removed by cancellation.
//
// JSON field names match the payload stored under the "hotelBookings" key and
// in the remote store, so both backends share one encoding.
type Booking struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"type"`
	ItemID        string    `json:"itemId"`
	ItemName      string    `json:"itemName"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"` // ownership key
	CustomerPhone string    `json:"customerPhone"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Guests        int       `json:"guests"`
	EventTime     *string   `json:"eventTime"` // nil unless Kind == KindHall
	TotalAmount   int64     `json:"totalAmount"`
	CreatedAt     time.Time `json:"bookingDate"`
}

// Units returns the number of nights (rooms) or days (halls) the booking spans.
func (b Booking) Units() int {
	return DurationUnits(b.CheckIn, b.CheckOut)
}

// BookingInput carries the booking form fields from the HTTP layer to the
// booking service. CustomerEmail is absent on purpose: it is always taken from
// the active session.
type BookingInput struct {
	Kind          Kind
	ItemID        string
	CustomerName  string
	CustomerPhone string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	EventTime     string
}

// Quote is the price preview shown while the booking form is being filled in.
type Quote struct {
	Units     int
	Unit      string
	UnitPrice int64
	Total     int64
}

// DurationUnits returns the whole number of days between checkIn and checkOut,
// rounded up, and never less than 1. A same-day range still costs one unit.
func DurationUnits(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// NormalizeEmail trims and lowercases an email address. Account lookups and
// session identities always use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
