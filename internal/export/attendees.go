// Package export writes attendee lists as downloadable files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eventify/eventify-web/internal/api"
)

const (
	missing    = "N/A"
	dateLayout = "2006-01-02"
)

// ErrNoAttendees is returned when there is nothing to export.
var ErrNoAttendees = errors.New("no attendees to export")

// Header is the first CSV row.
var Header = []string{"Name", "Email", "Ticket Type", "Booking Date"}

// Filename is the download name for an event export made at t.
func Filename(eventID string, t time.Time) string {
	return fmt.Sprintf("attendees_%s_%d.csv", eventID, t.UnixMilli())
}

// Row renders one attendee. Missing values become N/A.
func Row(a api.Attendee) []string {
	name, email, ticketType, booked := missing, missing, missing, missing
	if a.User != nil {
		name = orMissing(a.User.Name)
		email = orMissing(a.User.Email)
	}
	if a.Ticket != nil {
		ticketType = orMissing(a.Ticket.Type)
	}
	if !a.CreatedAt.IsZero() {
		booked = a.CreatedAt.Format(dateLayout)
	}
	return []string{name, email, ticketType, booked}
}

// WriteCSV writes the header and one row per attendee.
func WriteCSV(w io.Writer, attendees []api.Attendee) error {
	if len(attendees) == 0 {
		return ErrNoAttendees
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range attendees {
		if err := cw.Write(Row(a)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
