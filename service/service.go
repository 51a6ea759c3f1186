package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/handlers"
	"github.com/eventify/eventify-web/internal/middleware"
	"github.com/eventify/eventify-web/internal/routes"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/storage"
	"github.com/eventify/eventify-web/views"
)

type Service struct {
	storage  *storage.Storage
	config   *Config
	sessions *session.Manager
	client   *api.Client
	pages    *handlers.Pages

	authHandler      *handlers.AuthHandler
	eventsHandler    *handlers.EventsHandler
	userHandler      *handlers.UserHandler
	ticketsHandler   *handlers.TicketsHandler
	paymentHandler   *handlers.PaymentHandler
	organizerHandler *handlers.OrganizerHandler
	adminHandler     *handlers.AdminHandler
}

func New(storage *storage.Storage, config *Config) *Service {
	sessions := session.NewManager(config.Session.Secret, config.Session.CookieSecure)
	pages := handlers.NewPages(sessions, config.BaseURL)

	return &Service{
		storage:          storage,
		config:           config,
		sessions:         sessions,
		client:           api.New(config.API.BaseURL, api.WithTimeout(config.API.Timeout)),
		pages:            pages,
		authHandler:      handlers.NewAuthHandler(pages),
		eventsHandler:    handlers.NewEventsHandler(pages),
		userHandler:      handlers.NewUserHandler(pages),
		ticketsHandler:   handlers.NewTicketsHandler(pages),
		paymentHandler:   handlers.NewPaymentHandler(pages),
		organizerHandler: handlers.NewOrganizerHandler(pages),
		adminHandler:     handlers.NewAdminHandler(pages),
	}
}

// RegisterRoutes installs the middleware chain and mounts the route tree.
func (s *Service) RegisterRoutes(e *echo.Echo) error {
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.LoadSession(s.sessions, s.tokenSlot, s.client))

	e.GET("/health", s.handleHealth)

	table := s.views()
	resolve := func(view string) (echo.HandlerFunc, bool) {
		h, ok := table[view]
		return h, ok
	}

	err := routes.Mount(e, routes.Default(), resolve, s.pages.NotFound, auth.GuardConfig{
		State:   session.StateOf,
		Pending: s.handleLoading,
	})
	if err != nil {
		return fmt.Errorf("failed to mount routes: %w", err)
	}

	slog.Debug("routes mounted", "views", len(table))
	return nil
}

func (s *Service) tokenSlot(sessionID string) session.TokenSlot {
	return s.storage.TokenSlot(sessionID)
}

// views maps every view id of the route tree to its handler.
func (s *Service) views() map[string]echo.HandlerFunc {
	return map[string]echo.HandlerFunc{
		routes.ViewHome:           s.eventsHandler.HandleHome,
		routes.ViewLogin:          s.authHandler.HandleLogin,
		routes.ViewLoginSubmit:    s.authHandler.HandleLoginSubmit,
		routes.ViewRegister:       s.authHandler.HandleRegister,
		routes.ViewRegisterSubmit: s.authHandler.HandleRegisterSubmit,
		routes.ViewLogout:         s.authHandler.HandleLogout,
		routes.ViewEvents:         s.eventsHandler.HandleEvents,
		routes.ViewEventDetails:   s.eventsHandler.HandleEventDetails,
		routes.ViewEventBook:      s.eventsHandler.HandleBook,

		// User
		routes.ViewUserDashboard:      s.userHandler.HandleDashboard,
		routes.ViewUserProfile:        s.userHandler.HandleProfile,
		routes.ViewUserProfileUpdate:  s.userHandler.HandleProfileUpdate,
		routes.ViewUserTickets:        s.ticketsHandler.HandleMyTickets,
		routes.ViewUserTicketCancel:   s.ticketsHandler.HandleCancel,
		routes.ViewUserTicketTransfer: s.ticketsHandler.HandleTransfer,
		routes.ViewUserTicketPDF:      s.ticketsHandler.HandlePDF,
		routes.ViewUserRegCancel:      s.userHandler.HandleCancelRegistration,
		routes.ViewUserBookingSuccess: s.paymentHandler.HandleBookingSuccess,
		routes.ViewUserPaymentSuccess: s.paymentHandler.HandlePaymentSuccess,
		routes.ViewUserPaymentCancel:  s.paymentHandler.HandlePaymentCancel,
		routes.ViewUserTransfer:       s.ticketsHandler.HandleTransferPage,
		routes.ViewUserTransferSubmit: s.ticketsHandler.HandleTransfer,
		routes.ViewUserCreateEvent:    s.userHandler.HandleCreateEvent,

		// Organizer
		routes.ViewOrganizerDashboard:    s.organizerHandler.HandleDashboard,
		routes.ViewOrganizerCreate:       s.organizerHandler.HandleCreate,
		routes.ViewOrganizerCreateSubmit: s.organizerHandler.HandleCreateSubmit,
		routes.ViewOrganizerEdit:         s.organizerHandler.HandleEdit,
		routes.ViewOrganizerEditSubmit:   s.organizerHandler.HandleEditSubmit,
		routes.ViewOrganizerStats:        s.organizerHandler.HandleStats,
		routes.ViewOrganizerExport:       s.organizerHandler.HandleExport,
		routes.ViewOrganizerExportCSV:    s.organizerHandler.HandleExportCSV,
		routes.ViewOrganizerEvents:       s.organizerHandler.HandleMyEvents,
		routes.ViewOrganizerDelete:       s.organizerHandler.HandleDelete,
		routes.ViewOrganizerAttendees:    s.organizerHandler.HandleAttendees,

		// Admin
		routes.ViewAdminDashboard:     s.adminHandler.HandleDashboard,
		routes.ViewAdminPending:       s.adminHandler.HandlePending,
		routes.ViewAdminStatus:        s.adminHandler.HandleStatus,
		routes.ViewAdminRegistrations: s.adminHandler.HandleRegistrations,
		routes.ViewAdminEvents:        s.adminHandler.HandleAllEvents,
		routes.ViewAdminCreate:        s.adminHandler.HandleCreate,
		routes.ViewAdminCreateSubmit:  s.adminHandler.HandleCreateSubmit,
		routes.ViewAdminDelete:        s.adminHandler.HandleDelete,
		routes.ViewAdminOrganizers:    s.adminHandler.HandleOrganizers,
		routes.ViewAdminUsers:         s.adminHandler.HandleUsers,
		routes.ViewAdminEdit:          s.adminHandler.HandleEdit,
		routes.ViewAdminEditSubmit:    s.adminHandler.HandleEditSubmit,
	}
}

func (s *Service) handleLoading(c echo.Context) error {
	return handlers.Render(c, views.Loading(s.pages.Page(c, "Loading")))
}

func (s *Service) handleHealth(c echo.Context) error {
	status := "connected"
	if err := s.storage.DB().PingContext(c.Request().Context()); err != nil {
		slog.Error("health check failed", "error", err)
		status = "unavailable"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"environment": s.config.Environment,
		"database":    status,
		"api":         s.client.BaseURL(),
	})
}
