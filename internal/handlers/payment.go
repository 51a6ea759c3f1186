package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
)

// checkoutSessionParam is the query parameter the payment provider appends
// to the success URL.
const checkoutSessionParam = "session_id"

// PaymentHandler serves the pages the payment provider returns to
type PaymentHandler struct {
	pages *Pages
}

func NewPaymentHandler(pages *Pages) *PaymentHandler {
	return &PaymentHandler{
		pages: pages,
	}
}

// HandleBookingSuccess confirms a finished checkout and shows the booking
func (h *PaymentHandler) HandleBookingSuccess(c echo.Context) error {
	sessionID := c.QueryParam(checkoutSessionParam)
	page := h.pages.Page(c, "Booking")

	if sessionID == "" {
		page = page.WithFlash(session.FlashError, "Missing payment session details. Please try booking again.")
		return RenderStatus(c, http.StatusBadRequest, views.Message(page, views.MessageData{
			Heading:   "Booking Unsuccessful!",
			Message:   "Invalid booking attempt: Session ID is missing.",
			Link:      "/events",
			LinkLabel: "Browse events",
		}))
	}

	reg, err := client(c).ConfirmBooking(c.Request().Context(), sessionID)
	if err != nil || reg == nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("booking confirmation failed", "error", err, "checkout_session", sessionID)
		msg := api.Message(err, "Failed to confirm your booking. Please try again or contact support.")
		page = page.WithFlash(session.FlashError, msg)
		return RenderStatus(c, failureStatus(err), views.Message(page, views.MessageData{
			Heading:   "Booking Unsuccessful!",
			Message:   msg,
			Link:      "/events",
			LinkLabel: "Browse events",
		}))
	}

	page = page.WithFlash(session.FlashSuccess, "Your booking has been successfully confirmed!")
	return Render(c, views.Message(page, views.MessageData{
		Heading:      "Booking Confirmed!",
		Message:      "Thank you for your booking.",
		Link:         myTicketsPath,
		LinkLabel:    "View my tickets",
		Registration: reg,
	}))
}

// HandlePaymentSuccess verifies the payment and moves on to the tickets
func (h *PaymentHandler) HandlePaymentSuccess(c echo.Context) error {
	sessionID := c.QueryParam(checkoutSessionParam)

	if sessionID == "" {
		page := h.pages.Page(c, "Payment").
			WithFlash(session.FlashError, "Payment verification failed: Missing session ID or not authenticated.")
		return RenderStatus(c, http.StatusBadRequest, views.Message(page, views.MessageData{
			Heading:   "Payment Verification Failed",
			Message:   "Payment session ID missing or user not authenticated. Cannot verify payment.",
			Link:      "/user/dashboard",
			LinkLabel: "Go to Dashboard",
		}))
	}

	if _, err := client(c).ConfirmPayment(c.Request().Context(), sessionID); err != nil {
		if expired, rerr := h.pages.Expired(c, err); expired {
			return rerr
		}
		slog.Error("payment confirmation failed", "error", err, "checkout_session", sessionID)
		page := h.pages.Page(c, "Payment").
			WithFlash(session.FlashError, api.Message(err, "Payment verification failed. Please contact support."))
		return RenderStatus(c, failureStatus(err), views.Message(page, views.MessageData{
			Heading:   "Payment Verification Failed",
			Message:   api.Message(err, "An error occurred during payment verification. Please try again or contact support."),
			Link:      "/user/dashboard",
			LinkLabel: "Go to Dashboard",
		}))
	}

	slog.Info("payment confirmed", "checkout_session", sessionID)
	return h.pages.Redirect(c, myTicketsPath, session.FlashSuccess, "Payment successfully verified and tickets confirmed!")
}

// HandlePaymentCancel tells the visitor nothing was charged
func (h *PaymentHandler) HandlePaymentCancel(c echo.Context) error {
	page := h.pages.Page(c, "Payment Cancelled").
		WithFlash(session.FlashInfo, "Your payment was cancelled. No charges were made.")
	return Render(c, views.Message(page, views.MessageData{
		Heading:   "Payment Unsuccessful",
		Message:   "It looks like your payment was cancelled or did not go through. No charges have been applied.",
		Link:      "/user/dashboard",
		LinkLabel: "Go to Dashboard",
	}))
}
