// Package stats aggregates attendee lists into event statistics.
package stats

import (
	"slices"
	"time"

	"github.com/eventify/eventify-web/internal/api"
)

// UnknownType labels attendees whose ticket has no type.
const UnknownType = "Unknown"

// Event is the statistics of one event.
type Event struct {
	EventID          string
	Title            string
	AttendeesCount   int
	TicketTypeCounts map[string]int
	Revenue          float64
	// DailyBookings maps a booking day (2006-01-02) to its count.
	DailyBookings map[string]int
}

// TicketTypes returns the ticket type names sorted by name.
func (e Event) TicketTypes() []string {
	types := make([]string, 0, len(e.TicketTypeCounts))
	for t := range e.TicketTypeCounts {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Days returns the booking days in chronological order.
func (e Event) Days() []string {
	days := make([]string, 0, len(e.DailyBookings))
	for d := range e.DailyBookings {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// ForEvent aggregates the attendees of ev.
func ForEvent(ev api.Event, attendees []api.Attendee) Event {
	out := Event{
		EventID:          ev.ID,
		Title:            ev.Title,
		AttendeesCount:   len(attendees),
		TicketTypeCounts: map[string]int{},
		DailyBookings:    map[string]int{},
	}
	for _, a := range attendees {
		typ := UnknownType
		if a.Ticket != nil {
			if a.Ticket.Type != "" {
				typ = a.Ticket.Type
			}
			out.Revenue += a.Ticket.Price
		}
		out.TicketTypeCounts[typ]++
		if !a.CreatedAt.IsZero() {
			out.DailyBookings[a.CreatedAt.UTC().Format(time.DateOnly)]++
		}
	}
	return out
}

// Totals sums event statistics for the organizer dashboard.
type Totals struct {
	Events    int
	Attendees int
	Revenue   float64
}

func Sum(events []Event) Totals {
	t := Totals{Events: len(events)}
	for _, e := range events {
		t.Attendees += e.AttendeesCount
		t.Revenue += e.Revenue
	}
	return t
}
