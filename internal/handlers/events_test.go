package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
)

func concert() api.Event {
	return api.Event{
		ID:       "e1",
		Title:    "Summer Concert",
		Location: "Main Hall",
		Date:     time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC),
		Status:   api.StatusApproved,
		TicketTypes: []api.TicketType{
			{Type: "VIP", Price: 120, Quantity: 3},
			{Type: "General", Price: 40, Quantity: 0},
		},
	}
}

func TestValidateBooking(t *testing.T) {
	ev := concert()

	tests := []struct {
		name       string
		ticketType string
		quantity   int
		want       string
	}{
		{name: "valid", ticketType: "VIP", quantity: 2},
		{name: "all remaining", ticketType: "VIP", quantity: 3},
		{name: "no type", quantity: 1, want: string(ErrBookingIncomplete)},
		{name: "zero quantity", ticketType: "VIP", want: string(ErrBookingIncomplete)},
		{name: "unknown type", ticketType: "Balcony", quantity: 1, want: string(ErrUnknownTicketType)},
		{name: "sold out", ticketType: "General", quantity: 1, want: string(ErrTicketTypeSoldOut)},
		{name: "too many", ticketType: "VIP", quantity: 4, want: "Requested quantity exceeds available tickets (3 left)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(ev, tt.ticketType, tt.quantity)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

type bookingAPI struct {
	checkout    api.CheckoutRequest
	checkoutURL string
	status      int
}

func (a *bookingAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "e1" {
			WriteAPIJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
			return
		}
		WriteAPIJSON(w, http.StatusOK, map[string]any{"event": concert()})
	})
	mux.HandleFunc("POST /payment/checkout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&a.checkout)
		if a.status != 0 {
			WriteAPIJSON(w, a.status, map[string]string{"message": "Token expired"})
			return
		}
		WriteAPIJSON(w, http.StatusOK, map[string]string{"url": a.checkoutURL})
	})
	return mux
}

func newEventsEnv(t *testing.T, backend http.Handler) *TestEnv {
	t.Helper()
	env := NewTestEnv(backend)
	t.Cleanup(env.Close)

	h := NewEventsHandler(env.Pages)
	env.Echo.GET("/events/:eventId", h.HandleEventDetails)
	env.Echo.POST("/events/:eventId/book", h.HandleBook)
	return env
}

func TestHandleBook_RedirectsToCheckout(t *testing.T) {
	stub := &bookingAPI{checkoutURL: "https://checkout.stripe.test/c/abc"}
	env := newEventsEnv(t, stub.handler())
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/events/e1/book", url.Values{"ticketType": {"VIP"}, "quantity": {"2"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://checkout.stripe.test/c/abc", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, api.CheckoutRequest{EventID: "e1", TicketType: "VIP", Quantity: 2}, stub.checkout)
}

func TestHandleBook_RejectsInvalidSelection(t *testing.T) {
	stub := &bookingAPI{checkoutURL: "https://checkout.stripe.test/c/abc"}
	env := newEventsEnv(t, stub.handler())
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/events/e1/book", url.Values{"ticketType": {"General"}, "quantity": {"1"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/events/e1", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, stub.checkout.EventID)
	assert.Equal(t, []session.Flash{{Kind: session.FlashError, Message: string(ErrTicketTypeSoldOut)}}, b.Flashes())
}

func TestHandleBook_MissingCheckoutURL(t *testing.T) {
	env := newEventsEnv(t, (&bookingAPI{}).handler())
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/events/e1/book", url.Values{"ticketType": {"VIP"}, "quantity": {"1"}})

	assert.Equal(t, "/events/e1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []session.Flash{{Kind: session.FlashError, Message: "Failed to get Stripe checkout URL from backend."}}, b.Flashes())
}

func TestHandleBook_UnauthorizedLogsOut(t *testing.T) {
	env := newEventsEnv(t, (&bookingAPI{status: http.StatusUnauthorized}).handler())
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/events/e1/book", url.Values{"ticketType": {"VIP"}, "quantity": {"1"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get(echo.HeaderLocation))
	_, ok := env.Token(b.SessionID)
	assert.False(t, ok)
	assert.Equal(t, []session.Flash{{Kind: session.FlashWarning, Message: "Your session has expired. Please log in again."}}, b.Flashes())
}

func TestHandleEventDetails(t *testing.T) {
	env := newEventsEnv(t, (&bookingAPI{}).handler())

	t.Run("visitor sees the event", func(t *testing.T) {
		rec := env.Browser().Get("/events/e1")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Summer Concert")
		assert.Contains(t, body, "Main Hall")
		assert.NotContains(t, body, `action="/events/e1/book"`)
	})

	t.Run("logged in account can book", func(t *testing.T) {
		b := env.LoginAs(fakeIdentity(auth.RoleUser))
		rec := b.Get("/events/e1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/events/e1/book"`)
	})

	t.Run("missing event keeps the api status", func(t *testing.T) {
		rec := env.Browser().Get("/events/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Event not found")
	})
}

func TestFailureStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, failureStatus(&api.Error{Status: http.StatusNotFound}))
	assert.Equal(t, http.StatusBadGateway, failureStatus(api.ErrMalformedResponse))
}
