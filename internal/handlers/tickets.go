package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/internal/ticketpdf"
	"github.com/eventify/eventify-web/views"
)

const myTicketsPath = "/user/my-tickets"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TicketsHandler serves the ticket list and the ticket actions
type TicketsHandler struct {
	pages *Pages
}

func NewTicketsHandler(pages *Pages) *TicketsHandler {
	return &TicketsHandler{
		pages: pages,
	}
}

// HandleMyTickets lists the tickets of the logged in account
func (h *TicketsHandler) HandleMyTickets(c echo.Context) error {
	page := h.pages.Page(c, "My Tickets")

	tickets, err := client(c).MyTickets(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load tickets", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to fetch your tickets."))
	}

	return Render(c, views.Tickets(page, tickets))
}

// HandleCancel cancels one ticket
func (h *TicketsHandler) HandleCancel(c echo.Context) error {
	id := c.Param("ticketId")

	msg, err := client(c).CancelTicket(c.Request().Context(), id)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to cancel ticket", "error", err, "ticket_id", id)
		return h.pages.Redirect(c, myTicketsPath, session.FlashError, api.Message(err, "Failed to cancel ticket."))
	}

	if msg == "" {
		msg = "Ticket cancelled successfully!"
	}
	return h.pages.Redirect(c, myTicketsPath, session.FlashSuccess, msg)
}

// HandleTransferPage renders the transfer form for the ticket named by the
// ticketId query parameter
func (h *TicketsHandler) HandleTransferPage(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("ticketId"))
	if id == "" {
		return h.pages.Redirect(c, myTicketsPath, session.FlashWarning, "Please select a ticket to transfer.")
	}

	page := h.pages.Page(c, "Transfer Ticket")
	data := views.TransferData{TicketID: id}

	// The ticket summary is informative only; the form works without it.
	if tickets, err := client(c).MyTickets(c.Request().Context()); err == nil {
		data.Ticket = findTicket(tickets, id)
	} else if expired, rerr := h.pages.Expired(c, err); expired {
		return rerr
	}

	return Render(c, views.Transfer(page, data))
}

// HandleTransfer hands a ticket over to another account by email. The ticket
// comes from the path or, for the standalone form, from the ticketId field.
func (h *TicketsHandler) HandleTransfer(c echo.Context) error {
	id := c.Param("ticketId")
	if id == "" {
		id = strings.TrimSpace(c.FormValue("ticketId"))
	}
	if id == "" {
		return h.pages.Redirect(c, myTicketsPath, session.FlashWarning, "Please select a ticket to transfer.")
	}
	form := "/user/transfer-ticket?ticketId=" + url.QueryEscape(id)

	email := strings.TrimSpace(c.FormValue("email"))
	if !ValidEmail(email) {
		return h.pages.Redirect(c, form, session.FlashWarning, "Please enter a valid email address.")
	}

	msg, err := client(c).TransferTicket(c.Request().Context(), id, email)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to transfer ticket", "error", err, "ticket_id", id)
		return h.pages.Redirect(c, form, session.FlashError, api.Message(err, "Ticket transfer failed. Please try again."))
	}

	if msg == "" {
		msg = "Ticket transferred successfully!"
	}
	return h.pages.Redirect(c, myTicketsPath, session.FlashSuccess, msg)
}

// HandlePDF downloads one ticket as a PDF with a verification QR code
func (h *TicketsHandler) HandlePDF(c echo.Context) error {
	id := c.Param("ticketId")

	tickets, err := client(c).MyTickets(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load tickets for pdf", "error", err, "ticket_id", id)
		return h.pages.Redirect(c, myTicketsPath, session.FlashError, "Failed to download ticket. Please try again.")
	}

	ticket := findTicket(tickets, id)
	if ticket == nil {
		return h.pages.Redirect(c, myTicketsPath, session.FlashError, "Ticket not found.")
	}

	holder := ""
	if identity := store(c).State().Identity; identity != nil {
		holder = identity.DisplayName()
	}
	doc := PrintableTicket(*ticket, holder)

	var buf bytes.Buffer
	if err := ticketpdf.Render(&buf, h.pages.SiteURL(), doc); err != nil {
		slog.Error("failed to render ticket pdf", "error", err, "ticket_id", id)
		return h.pages.Redirect(c, myTicketsPath, session.FlashError, "Failed to download ticket. Please try again.")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", ticketpdf.Filename(doc)))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// PrintableTicket maps an API ticket to what is printed on its PDF.
func PrintableTicket(t api.Ticket, holder string) ticketpdf.Ticket {
	doc := ticketpdf.Ticket{
		TicketID:   t.ID,
		TicketType: t.TicketType,
		Quantity:   t.Quantity,
		Total:      t.TotalAmount,
		Holder:     holder,
	}
	if t.Event != nil {
		doc.EventID = t.Event.ID
		doc.EventTitle = t.Event.Title
		doc.Location = t.Event.Location
		doc.Date = t.Event.Date
	}
	return doc
}

func findTicket(tickets []api.Ticket, id string) *api.Ticket {
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i]
		}
	}
	return nil
}
