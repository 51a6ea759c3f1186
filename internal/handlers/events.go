package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
	"github.com/eventify/eventify-web/views/layout"
)

// BookingError is a booking validation failure, shown to the visitor as is.
type BookingError string

func (e BookingError) Error() string {
	return string(e)
}

const (
	ErrBookingIncomplete BookingError = "Please select a ticket type and enter a valid quantity."
	ErrUnknownTicketType BookingError = "Selected ticket type is invalid."
	ErrTicketTypeSoldOut BookingError = "Selected ticket type is sold out."
)

// EventsHandler serves the public event pages and booking
type EventsHandler struct {
	pages *Pages
}

func NewEventsHandler(pages *Pages) *EventsHandler {
	return &EventsHandler{
		pages: pages,
	}
}

// HandleHome lists every event on the landing page
func (h *EventsHandler) HandleHome(c echo.Context) error {
	page := h.pages.Page(c, "")

	events, err := client(c).Events(c.Request().Context())
	if err != nil {
		slog.Error("failed to load events", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load events."))
	}

	return Render(c, views.Home(page, events))
}

// HandleEvents lists the approved events
func (h *EventsHandler) HandleEvents(c echo.Context) error {
	page := h.pages.Page(c, "Events")

	events, err := client(c).ApprovedEvents(c.Request().Context())
	if err != nil {
		slog.Error("failed to load approved events", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load events. Please try again."))
	}

	return Render(c, views.Events(page, events))
}

// HandleEventDetails shows one event with its booking form
func (h *EventsHandler) HandleEventDetails(c echo.Context) error {
	eventID := c.Param("eventId")

	ev, err := client(c).Event(c.Request().Context(), eventID)
	if err != nil {
		slog.Warn("failed to load event", "error", err, "event_id", eventID)
		page := h.pages.Page(c, "Event")
		return RenderStatus(c, failureStatus(err), views.Message(page, views.MessageData{
			Heading:   "Event unavailable",
			Message:   api.Message(err, "Failed to load event details."),
			Link:      "/events",
			LinkLabel: "Browse events",
		}))
	}

	page := h.pages.Page(c, ev.Title)
	page.Meta = layout.NewPageMeta(c, h.pages.SiteURL()).FromEvent(*ev)

	return Render(c, views.EventDetails(page, views.EventDetailsData{
		Event:    *ev,
		CanBook:  page.LoggedIn(),
		TicketID: c.QueryParam("ticket"),
	}))
}

// HandleBook validates the selection and hands the browser to the payment
// provider checkout page
func (h *EventsHandler) HandleBook(c echo.Context) error {
	ctx := c.Request().Context()
	eventID := c.Param("eventId")
	back := "/events/" + eventID

	ticketType := strings.TrimSpace(c.FormValue("ticketType"))
	quantity, _ := strconv.Atoi(c.FormValue("quantity"))

	ev, err := client(c).Event(ctx, eventID)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Failed to load event details."))
	}

	if err := ValidateBooking(*ev, ticketType, quantity); err != nil {
		return h.pages.Redirect(c, back, session.FlashError, err.Error())
	}

	url, err := client(c).Checkout(ctx, api.CheckoutRequest{
		EventID:    eventID,
		TicketType: ticketType,
		Quantity:   quantity,
	})
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("checkout failed", "error", err, "event_id", eventID)
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Booking failed. Please try again."))
	}
	if url == "" {
		return h.pages.Redirect(c, back, session.FlashError, "Failed to get Stripe checkout URL from backend.")
	}

	slog.Info("checkout started", "event_id", eventID, "ticket_type", ticketType, "quantity", quantity)
	return c.Redirect(http.StatusSeeOther, url)
}

// ValidateBooking checks a ticket selection against the event before any
// payment is started.
func ValidateBooking(ev api.Event, ticketType string, quantity int) error {
	if ticketType == "" || quantity < 1 {
		return ErrBookingIncomplete
	}
	tt, ok := ev.TicketType(ticketType)
	if !ok {
		return ErrUnknownTicketType
	}
	if tt.Quantity <= 0 {
		return ErrTicketTypeSoldOut
	}
	if quantity > tt.Quantity {
		return BookingError(fmt.Sprintf("Requested quantity exceeds available tickets (%d left).", tt.Quantity))
	}
	return nil
}

// failureStatus maps a failed API call to the status of the page reporting it.
func failureStatus(err error) int {
	if status := api.StatusOf(err); status >= http.StatusBadRequest {
		return status
	}
	return http.StatusBadGateway
}
