package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/middleware"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	pages *Pages
}

func NewAuthHandler(pages *Pages) *AuthHandler {
	return &AuthHandler{
		pages: pages,
	}
}

// HandleLogin renders the login form
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	return Render(c, views.Login(h.pages.Page(c, "Login"), views.CredentialsData{}))
}

// HandleLoginSubmit exchanges the credentials for a token and lands the
// identity on its dashboard
func (h *AuthHandler) HandleLoginSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		page := h.pages.Page(c, "Login").WithFlash(session.FlashError, "Please enter your email and password.")
		return Render(c, views.Login(page, views.CredentialsData{Email: email}))
	}

	res, err := client(c).Login(ctx, email, password)
	if err != nil {
		slog.Info("login failed", "error", err, "status", api.StatusOf(err))
		page := h.pages.Page(c, "Login").
			WithFlash(session.FlashError, api.Message(err, "Login failed. Please check your credentials."))
		return Render(c, views.Login(page, views.CredentialsData{Email: email}))
	}

	// Every login gets a fresh browser session id.
	if _, err := middleware.RotateSession(c); err != nil {
		slog.Error("failed to rotate session on login", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	store(c).Login(res.User, res.Token)
	slog.Info("user logged in", "user_id", res.User.ID, "role", res.User.Role.String())

	return h.pages.Redirect(c, auth.DefaultDashboard(res.User.Role), session.FlashSuccess, "Login successful!")
}

// HandleRegister renders the registration form
func (h *AuthHandler) HandleRegister(c echo.Context) error {
	return Render(c, views.Register(h.pages.Page(c, "Register"), views.CredentialsData{}))
}

// HandleRegisterSubmit creates an account and sends the visitor to login
func (h *AuthHandler) HandleRegisterSubmit(c echo.Context) error {
	ctx := c.Request().Context()
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	form := views.CredentialsData{Name: req.Name, Email: req.Email}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		page := h.pages.Page(c, "Register").WithFlash(session.FlashError, "Please fill in all fields.")
		return Render(c, views.Register(page, form))
	}

	if err := client(c).Register(ctx, req); err != nil {
		slog.Info("registration failed", "error", err, "status", api.StatusOf(err))
		page := h.pages.Page(c, "Register").
			WithFlash(session.FlashError, api.Message(err, "Registration failed. Please try again."))
		return Render(c, views.Register(page, form))
	}

	return h.pages.Redirect(c, auth.LoginPath, session.FlashSuccess, "Registration successful! Please login.")
}

// HandleLogout clears the session and returns to the login page
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	store(c).Logout()
	return h.pages.Redirect(c, auth.LoginPath, session.FlashInfo, "You have been logged out.")
}
