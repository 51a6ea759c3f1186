package api

import (
	"bytes"
	"encoding/json"
	"time"
)

// Event statuses set by admins.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Registration statuses.
const (
	RegistrationCancelled   = "cancelled"
	RegistrationTransferred = "transferred"
)

type TicketType struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Event struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Date        time.Time    `json:"date"`
	Capacity    int          `json:"capacity"`
	Price       float64      `json:"price"`
	Image       string       `json:"image,omitempty"`
	Status      string       `json:"status,omitempty"`
	TicketTypes []TicketType `json:"ticketTypes,omitempty"`
	Organizer   *AccountRef  `json:"organizer,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`

	// MaxAttendees is the admin-set attendance cap; zero when unset.
	MaxAttendees int `json:"maxAttendees,omitempty"`
}

// TicketType returns the ticket type with the given name.
func (e Event) TicketType(name string) (TicketType, bool) {
	for _, t := range e.TicketTypes {
		if t.Type == name {
			return t, true
		}
	}
	return TicketType{}, false
}

// Account is a user record as listed by admin endpoints. Role is kept as the
// raw string so that listings never fail on a role the frontend doesn't know.
type Account struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountRef is a reference to an account that the API returns either as a
// bare id or as a populated object.
type AccountRef struct {
	Account
}

func (r *AccountRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.Account = Account{ID: id}
		return nil
	}
	return json.Unmarshal(data, &r.Account)
}

type Ticket struct {
	ID          string    `json:"_id"`
	Event       *Event    `json:"event,omitempty"`
	TicketType  string    `json:"ticketType"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Payment struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

type TicketSummary struct {
	ID    string  `json:"_id,omitempty"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

type Registration struct {
	ID           string         `json:"_id"`
	Event        *Event         `json:"event,omitempty"`
	User         *AccountRef    `json:"user,omitempty"`
	Ticket       *TicketSummary `json:"ticket,omitempty"`
	Payment      *Payment       `json:"payment,omitempty"`
	Status       string         `json:"status"`
	RegisteredAt time.Time      `json:"registeredAt"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Cancelled reports whether the registration was cancelled.
func (r Registration) Cancelled() bool {
	return r.Status == RegistrationCancelled
}

type Attendee struct {
	ID        string         `json:"_id"`
	User      *Account       `json:"user,omitempty"`
	Ticket    *TicketSummary `json:"ticket,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type UserCounts struct {
	Total        int `json:"total"`
	NewThisMonth int `json:"newThisMonth"`
}

type EventCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

type AdminStats struct {
	Users         UserCounts  `json:"users"`
	Events        EventCounts `json:"events"`
	Registrations int         `json:"registrations"`
	Revenue       float64     `json:"revenue"`
}

// EventInput is the payload for creating or editing an event.
type EventInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Date         time.Time    `json:"date"`
	Location     string       `json:"location"`
	Capacity     int          `json:"capacity,omitempty"`
	MaxAttendees int          `json:"maxAttendees,omitempty"`
	Price        float64      `json:"price,omitempty"`
	Image        string       `json:"image,omitempty"`
	TicketTypes  []TicketType `json:"ticketTypes,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CheckoutRequest struct {
	EventID    string `json:"eventId"`
	TicketType string `json:"ticketType"`
	Quantity   int    `json:"quantity"`
}

type ProfileUpdate struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

type PaymentConfirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
