package handlers

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
)

// UserHandler serves the account pages available to every role
type UserHandler struct {
	pages *Pages
}

func NewUserHandler(pages *Pages) *UserHandler {
	return &UserHandler{
		pages: pages,
	}
}

// HandleDashboard shows the profile summary and the registrations of the
// logged in account
func (h *UserHandler) HandleDashboard(c echo.Context) error {
	page := h.pages.Page(c, "Dashboard")

	var (
		profile *auth.Identity
		regs    []api.Registration
	)
	cl := client(c)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		profile, err = cl.Profile(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		regs, err = cl.MyRegistrations(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load user dashboard", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load your dashboard data."))
	}

	data := views.UserDashboardData{Registrations: regs}
	switch {
	case profile != nil:
		data.Identity = *profile
	case page.Identity != nil:
		data.Identity = *page.Identity
	}

	return Render(c, views.UserDashboard(page, data))
}

// HandleProfile renders the profile form
func (h *UserHandler) HandleProfile(c echo.Context) error {
	page := h.pages.Page(c, "My Profile")

	var identity auth.Identity
	if page.Identity != nil {
		identity = *page.Identity
	}

	profile, err := client(c).Profile(c.Request().Context())
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to load profile", "error", err)
		page = page.WithFlash(session.FlashError, api.Message(err, "Failed to load profile details."))
	} else {
		identity = *profile
	}

	return Render(c, views.Profile(page, identity))
}

// HandleProfileUpdate saves the name and optionally a new password, and
// refreshes the session identity with what the API returns
func (h *UserHandler) HandleProfileUpdate(c echo.Context) error {
	path := auth.ProfilePath(store(c).State().Role())
	update := api.ProfileUpdate{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Password: c.FormValue("password"),
	}
	if update.Name == "" {
		return h.pages.Redirect(c, path, session.FlashError, "Name is required.")
	}

	msg, user, err := client(c).UpdateProfile(c.Request().Context(), update)
	if err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to update profile", "error", err)
		return h.pages.Redirect(c, path, session.FlashError, api.Message(err, "Failed to update profile. Please try again."))
	}

	if user != nil {
		store(c).UpdateIdentity(*user)
	}
	if msg == "" {
		msg = "Profile updated successfully!"
	}
	return h.pages.Redirect(c, path, session.FlashSuccess, msg)
}

// HandleCancelRegistration cancels one registration of the account
func (h *UserHandler) HandleCancelRegistration(c echo.Context) error {
	id := c.Param("registrationId")
	back := returnTo(c, "/user/dashboard")

	if _, err := client(c).CancelRegistration(c.Request().Context(), id); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("failed to cancel registration", "error", err, "registration_id", id)
		return h.pages.Redirect(c, back, session.FlashError, api.Message(err, "Failed to cancel ticket."))
	}

	return h.pages.Redirect(c, back, session.FlashSuccess, "Ticket cancelled successfully!")
}

// HandleCreateEvent renders the event form for organizers and admins coming
// from the account area; it posts to the organizer section
func (h *UserHandler) HandleCreateEvent(c echo.Context) error {
	return Render(c, views.EventForm(h.pages.Page(c, "Create Event"), organizerCreateForm(api.EventInput{})))
}
