package domain

import "fmt"

// Kind distinguishes the two bookable categories.
type Kind string

const (
	KindRoom Kind = "room"
	KindHall Kind = "hall"
)

// ParseKind validates a kind string from user input.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindRoom, KindHall:
		return k, nil
	}
	return "", fmt.Errorf("%w: kind must be %q or %q", ErrValidation, KindRoom, KindHall)
}

// Unit names the billing unit for the kind: rooms are billed per night,
// halls per day.
func (k Kind) Unit() string {
	if k == KindHall {
		return "day"
	}
	return "night"
}

// Label is the capitalized kind used on receipts.
func (k Kind) Label() string {
	if k == KindHall {
		return "Hall"
	}
	return "Room"
}

// BookableItem is a room or hall from the static catalog.
// Items are loaded once and never change while the process runs; bookings copy
// the name and price they need so later catalog edits do not affect them.
type BookableItem struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Number      string   `json:"number"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Capacity    int      `json:"capacity"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}
