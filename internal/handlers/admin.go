package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
)

const (
	adminEventsPath  = "/admin/allEvents"
	adminPendingPath = "/admin/pending-events"
)

// AdminHandler serves the admin section
type AdminHandler struct {
	pages *Pages
}

func NewAdminHandler(pages *Pages) *AdminHandler {
	return &AdminHandler{
		pages: pages,
	}
}

// HandleDashboard shows the platform totals
func (h *AdminHandler) HandleDashboard(c echo.Context) error {
	page := h.pages.Page(c, "Admin Dashboard")

	st, err := client(c).AdminDashboard(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load admin dashboard", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load dashboard data."))
		st = &api.AdminStats{}
	}

	return Render(c, views.AdminDashboard(page, *st))
}

// HandlePending lists the events waiting for moderation
func (h *AdminHandler) HandlePending(c echo.Context) error {
	page := h.pages.Page(c, "Pending Events")

	events, err := client(c).PendingEvents(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load pending events", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load pending events."))
	}

	return Render(c, views.AdminEvents(page, views.AdminEventsData{
		Heading:    "Pending Events",
		Events:     events,
		Moderation: true,
	}))
}

// HandleStatus approves or rejects an event
func (h *AdminHandler) HandleStatus(c echo.Context) error {
	id := c.Param("eventId")
	status := c.FormValue("status")
	back := returnTo(c, adminPendingPath)

	switch status {
	case api.StatusApproved, api.StatusRejected, api.StatusPending:
	default:
		return h.pages.Redirect(c, back, session.FlashError, "Invalid event status.")
	}

	if err := client(c).SetEventStatus(c.Request().Context(), id, status); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to update event status", "error", err, "event_id", id, "status", status)
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Failed to update event status."))
	}

	slog.Info("event status updated", "event_id", id, "status", status)
	return h.pages.Redirect(c, back, session.FlashSuccess, "Event "+status+" successfully!")
}

// HandleRegistrations lists every registration
func (h *AdminHandler) HandleRegistrations(c echo.Context) error {
	page := h.pages.Page(c, "Registrations")

	regs, err := client(c).AdminRegistrations(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load registrations", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to fetch registrations."))
	}

	return Render(c, views.Registrations(page, regs))
}

// HandleAllEvents lists every event with edit and delete actions
func (h *AdminHandler) HandleAllEvents(c echo.Context) error {
	page := h.pages.Page(c, "All Events")

	events, err := client(c).AdminEvents(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load events", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to fetch events"))
	}

	return Render(c, views.AdminEvents(page, views.AdminEventsData{
		Heading: "All Events",
		Events:  events,
	}))
}

func adminCreateForm(in api.EventInput) views.EventFormData {
	return views.EventFormData{
		Heading: "Create Event",
		Action:  "/admin/events/create",
		Submit:  "Create Event",
		Cancel:  adminEventsPath,
		Event:   in,
	}
}

func adminEditForm(id string, in api.EventInput) views.EventFormData {
	return views.EventFormData{
		Heading: "Edit Event",
		Action:  "/admin/edit-event/" + id,
		Submit:  "Update Event",
		Cancel:  adminEventsPath,
		Event:   in,
	}
}

// HandleCreate renders the admin create event form
func (h *AdminHandler) HandleCreate(c echo.Context) error {
	return Render(c, views.EventForm(h.pages.Page(c, "Create Event"), adminCreateForm(api.EventInput{})))
}

// HandleCreateSubmit creates an event directly
func (h *AdminHandler) HandleCreateSubmit(c echo.Context) error {
	in, invalid := parseEventForm(c, false)
	if invalid != "" {
		page := h.pages.Page(c, "Create Event").WithFlash(session.FlashError, invalid)
		return RenderStatus(c, http.StatusUnprocessableEntity, views.EventForm(page, adminCreateForm(in)))
	}

	msg, err := client(c).AdminCreateEvent(c.Request().Context(), in)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to create event", "error", err)
		page := h.pages.Page(c, "Create Event").
			WithFlash(session.FlashError, api.Message(err, "Failed to create event. Please try again."))
		return Render(c, views.EventForm(page, adminCreateForm(in)))
	}

	if msg == "" {
		msg = "Event created successfully!"
	}
	return h.pages.Redirect(c, adminEventsPath, session.FlashSuccess, msg)
}

// HandleDelete deletes any event
func (h *AdminHandler) HandleDelete(c echo.Context) error {
	id := c.Param("eventId")
	back := returnTo(c, adminEventsPath)

	if err := client(c).DeleteAdminEvent(c.Request().Context(), id); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to delete event", "error", err, "event_id", id)
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Failed to delete event"))
	}

	slog.Info("event deleted by admin", "event_id", id)
	return h.pages.Redirect(c, back, session.FlashSuccess, "Event deleted successfully")
}

// HandleOrganizers lists the organizer accounts
func (h *AdminHandler) HandleOrganizers(c echo.Context) error {
	page := h.pages.Page(c, "Organizers")

	accounts, err := client(c).Organizers(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load organizers", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to fetch organizers"))
	}

	return Render(c, views.Accounts(page, views.AccountsData{Heading: "All Organizers", Accounts: accounts}))
}

// HandleUsers lists the user accounts
func (h *AdminHandler) HandleUsers(c echo.Context) error {
	page := h.pages.Page(c, "Users")

	accounts, err := client(c).Users(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load users", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to fetch users"))
	}

	return Render(c, views.Accounts(page, views.AccountsData{Heading: "All Users", Accounts: accounts}))
}

// HandleEdit renders the admin edit form of one event
func (h *AdminHandler) HandleEdit(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return h.pages.Redirect(c, adminEventsPath, session.FlashError, "Event ID is missing.")
	}

	ev, err := client(c).AdminEvent(c.Request().Context(), id)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load event for edit", "error", err, "event_id", id)
		return h.pages.Redirect(c, adminEventsPath, session.FlashError, api.Message(err, "Failed to fetch event data."))
	}

	return Render(c, views.EventForm(h.pages.Page(c, "Edit Event"), adminEditForm(id, eventInputFrom(*ev))))
}

// HandleEditSubmit saves an event edited by an admin. The capacity field is
// sent as the attendance cap.
func (h *AdminHandler) HandleEditSubmit(c echo.Context) error {
	id := c.Param("id")

	in, invalid := parseEventForm(c, false)
	if invalid != "" {
		page := h.pages.Page(c, "Edit Event").WithFlash(session.FlashError, invalid)
		return RenderStatus(c, http.StatusUnprocessableEntity, views.EventForm(page, adminEditForm(id, in)))
	}

	update := api.EventInput{
		Title:        in.Title,
		Description:  in.Description,
		Date:         in.Date,
		Location:     in.Location,
		MaxAttendees: in.Capacity,
	}
	if err := client(c).UpdateAdminEvent(c.Request().Context(), id, update); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to update event", "error", err, "event_id", id)
		page := h.pages.Page(c, "Edit Event").
			WithFlash(session.FlashError, api.Message(err, "Failed to update event. Please try again."))
		return Render(c, views.EventForm(page, adminEditForm(id, in)))
	}

	return h.pages.Redirect(c, adminEventsPath, session.FlashSuccess, "Event updated successfully!")
}
