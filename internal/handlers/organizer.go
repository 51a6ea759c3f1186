package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/export"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/internal/stats"
	"github.com/eventify/eventify-web/views"
)

const (
	organizerEventsPath = "/organizer/myevents"
	// attendeeFanout bounds the concurrent attendee lookups of the dashboard.
	attendeeFanout = 4
)

// OrganizerHandler serves the organizer section
type OrganizerHandler struct {
	pages *Pages
	now   func() time.Time
}

func NewOrganizerHandler(pages *Pages) *OrganizerHandler {
	return &OrganizerHandler{
		pages: pages,
		now:   time.Now,
	}
}

// HandleDashboard sums attendees and revenue over every event of the organizer
func (h *OrganizerHandler) HandleDashboard(c echo.Context) error {
	page := h.pages.Page(c, "Organizer Dashboard")

	summaries, err := h.eventStats(c)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load organizer dashboard", "error", err)
		page = page.WithFlash(session.FlashError, "Failed to fetch dashboard data")
	}

	return Render(c, views.OrganizerDashboard(page, views.OrganizerDashboardData{
		Totals: stats.Sum(summaries),
		Events: summaries,
	}))
}

// eventStats loads the attendees of every organizer event concurrently.
func (h *OrganizerHandler) eventStats(c echo.Context) ([]stats.Event, error) {
	cl := client(c)
	events, err := cl.OrganizerEvents(c.Request().Context())
	if err != nil {
		return nil, err
	}

	summaries := make([]stats.Event, len(events))
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.SetLimit(attendeeFanout)
	for i, ev := range events {
		g.Go(func() error {
			attendees, err := cl.Attendees(ctx, ev.ID)
			if err != nil {
				return fmt.Errorf("failed to load attendees of event %s: %w", ev.ID, err)
			}
			summaries[i] = stats.ForEvent(ev, attendees)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func organizerCreateForm(in api.EventInput) views.EventFormData {
	return views.EventFormData{
		Heading:   "Create Event",
		Action:    "/organizer/createevent",
		Submit:    "Create Event",
		Cancel:    organizerEventsPath,
		Event:     in,
		ShowImage: true,
	}
}

func organizerEditForm(eventID string, in api.EventInput) views.EventFormData {
	return views.EventFormData{
		Heading:   "Edit Event",
		Action:    "/organizer/editevent/" + eventID,
		Submit:    "Update Event",
		Cancel:    organizerEventsPath,
		Event:     in,
		ShowImage: true,
	}
}

// HandleCreate renders the create event form
func (h *OrganizerHandler) HandleCreate(c echo.Context) error {
	return Render(c, views.EventForm(h.pages.Page(c, "Create Event"), organizerCreateForm(api.EventInput{})))
}

// HandleCreateSubmit submits a new event for approval
func (h *OrganizerHandler) HandleCreateSubmit(c echo.Context) error {
	in, invalid := parseEventForm(c, true)
	if invalid != "" {
		page := h.pages.Page(c, "Create Event").WithFlash(session.FlashError, invalid)
		return RenderStatus(c, http.StatusUnprocessableEntity, views.EventForm(page, organizerCreateForm(in)))
	}

	if _, err := client(c).CreateEvent(c.Request().Context(), in); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to create event", "error", err)
		page := h.pages.Page(c, "Create Event").WithFlash(session.FlashError, "Failed to create event")
		return Render(c, views.EventForm(page, organizerCreateForm(in)))
	}

	return h.pages.Redirect(c, organizerEventsPath, session.FlashSuccess, "Event created and pending approval")
}

// HandleEdit renders the edit form of one event
func (h *OrganizerHandler) HandleEdit(c echo.Context) error {
	id := c.Param("eventId")

	ev, err := client(c).OrganizerEvent(c.Request().Context(), id)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load event for edit", "error", err, "event_id", id)
		return h.pages.Redirect(c, organizerEventsPath, session.FlashError, "Failed to fetch event details")
	}

	return Render(c, views.EventForm(h.pages.Page(c, "Edit Event"), organizerEditForm(id, eventInputFrom(*ev))))
}

// HandleEditSubmit saves an edited event
func (h *OrganizerHandler) HandleEditSubmit(c echo.Context) error {
	id := c.Param("eventId")

	in, invalid := parseEventForm(c, true)
	if invalid != "" {
		page := h.pages.Page(c, "Edit Event").WithFlash(session.FlashError, invalid)
		return RenderStatus(c, http.StatusUnprocessableEntity, views.EventForm(page, organizerEditForm(id, in)))
	}

	if err := client(c).UpdateOrganizerEvent(c.Request().Context(), id, in); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to update event", "error", err, "event_id", id)
		page := h.pages.Page(c, "Edit Event").WithFlash(session.FlashError, "Failed to update event")
		return Render(c, views.EventForm(page, organizerEditForm(id, in)))
	}

	return h.pages.Redirect(c, organizerEventsPath, session.FlashSuccess, "Event updated successfully")
}

// HandleStats shows the statistics of one event
func (h *OrganizerHandler) HandleStats(c echo.Context) error {
	id := c.Param("eventId")
	ctx := c.Request().Context()
	cl := client(c)

	var (
		ev        *api.Event
		attendees []api.Attendee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev, err = cl.OrganizerEvent(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		attendees, err = cl.Attendees(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load event statistics", "error", err, "event_id", id)
		return h.pages.Redirect(c, organizerEventsPath, session.FlashError, "Failed to load statistics")
	}

	return Render(c, views.EventStats(h.pages.Page(c, ev.Title+" Statistics"), views.EventStatsData{
		Event: *ev,
		Stats: stats.ForEvent(*ev, attendees),
	}))
}

// HandleMyEvents lists the events of the organizer
func (h *OrganizerHandler) HandleMyEvents(c echo.Context) error {
	page := h.pages.Page(c, "My Events")

	events, err := client(c).OrganizerEvents(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load organizer events", "error", err)
		page = page.WithFlash(session.FlashError, "Failed to fetch your events")
	}

	return Render(c, views.OrganizerEvents(page, events))
}

// HandleDelete deletes one event of the organizer
func (h *OrganizerHandler) HandleDelete(c echo.Context) error {
	id := c.Param("eventId")
	back := returnTo(c, organizerEventsPath)

	if err := client(c).DeleteOrganizerEvent(c.Request().Context(), id); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to delete event", "error", err, "event_id", id)
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Failed to delete event"))
	}

	slog.Info("event deleted", "event_id", id)
	return h.pages.Redirect(c, back, session.FlashSuccess, "Event deleted successfully")
}

// HandleAttendees lists the attendees of one event
func (h *OrganizerHandler) HandleAttendees(c echo.Context) error {
	id := c.Param("eventId")
	page := h.pages.Page(c, "Attendees")
	data := views.AttendeesData{EventID: id}

	attendees, err := client(c).Attendees(c.Request().Context(), id)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load attendees", "error", err, "event_id", id)
		page = page.WithFlash(session.FlashError, "Failed to load attendees")
	}
	data.Attendees = attendees

	if ev, err := client(c).OrganizerEvent(c.Request().Context(), id); err == nil {
		data.Title = ev.Title
	}

	return Render(c, views.Attendees(page, data))
}

func exportPagePath(eventID string) string {
	return "/organizer/exportattendees/" + eventID
}

// HandleExport renders the export page of one event
func (h *OrganizerHandler) HandleExport(c echo.Context) error {
	id := c.Param("eventId")
	page := h.pages.Page(c, "Export Attendees")
	data := views.ExportData{EventID: id, DownloadURL: exportPagePath(id) + "/csv"}

	attendees, err := client(c).Attendees(c.Request().Context(), id)
	switch {
	case err != nil:
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load attendees for export", "error", err, "event_id", id)
		page = page.WithFlash(session.FlashError, "Failed to fetch attendees")
	case len(attendees) == 0:
		page = page.WithFlash(session.FlashWarning, "No attendees to export")
	}
	data.Count = len(attendees)

	if ev, err := client(c).OrganizerEvent(c.Request().Context(), id); err == nil {
		data.Title = ev.Title
	}

	return Render(c, views.Export(page, data))
}

// HandleExportCSV downloads the attendees of one event as CSV
func (h *OrganizerHandler) HandleExportCSV(c echo.Context) error {
	id := c.Param("eventId")

	attendees, err := client(c).Attendees(c.Request().Context(), id)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load attendees for export", "error", err, "event_id", id)
		return h.pages.Redirect(c, exportPagePath(id), session.FlashError, "Failed to fetch attendees")
	}
	if len(attendees) == 0 {
		return h.pages.Redirect(c, exportPagePath(id), session.FlashWarning, "No attendees to export")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(id, h.now())))
	c.Response().WriteHeader(http.StatusOK)

	if err := export.WriteCSV(c.Response(), attendees); err != nil {
		// Headers are already sent; all that is left is to log.
		slog.Error("failed to write attendee csv", "error", err, "event_id", id)
		return nil
	}

	slog.Info("attendees exported", "event_id", id, "count", len(attendees))
	return nil
}
