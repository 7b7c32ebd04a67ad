package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/grand-plaza/internal/domain"
)

// Wire types for the JSON API described in openapi/openapi.yaml. Field names
// are camelCase to match what the widget front-end already stores.

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message for the user.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// CatalogItem is a room or hall as shown in the listing grid.
type CatalogItem struct {
	Id          string   `json:"id"`
	Type        string   `json:"type"`
	Number      string   `json:"number"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Unit        string   `json:"unit"`
	Capacity    int      `json:"capacity"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// CatalogList is the body of GET /catalog.
type CatalogList struct {
	Data []CatalogItem `json:"data"`
}

// BookingRequest is the body of POST /bookings and POST /bookings/quote.
type BookingRequest struct {
	Type          string             `json:"type"`
	ItemId        string             `json:"itemId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	CheckIn       openapi_types.Date `json:"checkIn"`
	CheckOut      openapi_types.Date `json:"checkOut"`
	Guests        int                `json:"guests"`
	EventTime     string             `json:"eventTime,omitempty"`
}

// Booking is a confirmed booking as shown in the history list.
type Booking struct {
	Id            string             `json:"id"`
	Type          string             `json:"type"`
	ItemId        string             `json:"itemId"`
	ItemName      string             `json:"itemName"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	CheckIn       openapi_types.Date `json:"checkIn"`
	CheckOut      openapi_types.Date `json:"checkOut"`
	Guests        int                `json:"guests"`
	EventTime     *string            `json:"eventTime"`
	Units         int                `json:"units"`
	Unit          string             `json:"unit"`
	TotalAmount   int64              `json:"totalAmount"`
	BookingDate   time.Time          `json:"bookingDate"`
}

// BookingList is the body of GET /bookings.
type BookingList struct {
	Data []Booking `json:"data"`
}

// Quote is the body of POST /bookings/quote.
type Quote struct {
	Units     int    `json:"units"`
	Unit      string `json:"unit"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the signed-in identity.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func itemToResponse(item domain.BookableItem) CatalogItem {
	features := item.Features
	if features == nil {
		features = []string{}
	}
	return CatalogItem{
		Id:          item.ID,
		Type:        string(item.Kind),
		Number:      item.Number,
		Name:        item.Name,
		Price:       item.Price,
		Unit:        item.Kind.Unit(),
		Capacity:    item.Capacity,
		Image:       item.Image,
		Description: item.Description,
		Features:    features,
	}
}

func bookingToResponse(b domain.Booking) Booking {
	return Booking{
		Id:            b.ID,
		Type:          string(b.Kind),
		ItemId:        b.ItemID,
		ItemName:      b.ItemName,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		CheckIn:       openapi_types.Date{Time: b.CheckIn},
		CheckOut:      openapi_types.Date{Time: b.CheckOut},
		Guests:        b.Guests,
		EventTime:     b.EventTime,
		Units:         b.Units(),
		Unit:          b.Kind.Unit(),
		TotalAmount:   b.TotalAmount,
		BookingDate:   b.CreatedAt,
	}
}

// requestToInput converts a booking request body into service input.
// Only the kind is checked here; everything else is the service's job.
func requestToInput(req BookingRequest) (domain.BookingInput, error) {
	kind, err := domain.ParseKind(req.Type)
	if err != nil {
		return domain.BookingInput{}, err
	}
	return domain.BookingInput{
		Kind:          kind,
		ItemID:        req.ItemId,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CheckIn:       req.CheckIn.Time,
		CheckOut:      req.CheckOut.Time,
		Guests:        req.Guests,
		EventTime:     req.EventTime,
	}, nil
}

func sessionToResponse(s domain.Session) Session {
	return Session{Name: s.Name, Email: s.Email}
}
