package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
)

func newPaymentEnv(t *testing.T, confirmed *string) *TestEnv {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payment/confirm", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		*confirmed = body["sessionId"]
		ev := concert()
		WriteAPIJSON(w, http.StatusOK, map[string]any{"registration": api.Registration{
			ID: "r1", Event: &ev, Status: "confirmed",
			Ticket:  &api.TicketSummary{Type: "VIP", Price: 120},
			Payment: &api.Payment{Status: "paid", Amount: 120},
		}})
	})
	mux.HandleFunc("POST /payment/confirm/payment", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusPaymentRequired, map[string]string{"message": "Payment not completed"})
	})

	env := NewTestEnv(mux)
	t.Cleanup(env.Close)
	h := NewPaymentHandler(env.Pages)
	env.Echo.GET("/user/booking-success", h.HandleBookingSuccess)
	env.Echo.GET("/user/payment/success", h.HandlePaymentSuccess)
	env.Echo.GET("/user/payment/cancel", h.HandlePaymentCancel)
	return env
}

func TestHandleBookingSuccess(t *testing.T) {
	var confirmed string
	env := newPaymentEnv(t, &confirmed)
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Get("/user/booking-success?session_id=cs_test_1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cs_test_1", confirmed)
	body := rec.Body.String()
	assert.Contains(t, body, "Booking Confirmed!")
	assert.Contains(t, body, "Summer Concert")
	assert.Contains(t, body, "Your booking has been successfully confirmed!")

	rec = b.Get("/user/booking-success")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking Unsuccessful!")
}

func TestHandlePaymentSuccess_Failure(t *testing.T) {
	var confirmed string
	env := newPaymentEnv(t, &confirmed)
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Get("/user/payment/success?session_id=cs_test_2")

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment not completed")
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, b.Flashes())
}

func TestHandlePaymentCancel(t *testing.T) {
	var confirmed string
	env := newPaymentEnv(t, &confirmed)

	rec := env.LoginAs(fakeIdentity(auth.RoleUser)).Get("/user/payment/cancel")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your payment was cancelled. No charges were made.")
	assert.Contains(t, rec.Body.String(), `href="/user/dashboard"`)
	assert.Empty(t, confirmed)
}

func TestRedirectFlashIsShownOnce(t *testing.T) {
	env := NewTestEnv(nil)
	t.Cleanup(env.Close)
	env.Echo.POST("/act", func(c echo.Context) error {
		return env.Pages.Redirect(c, "/done", session.FlashSuccess, "Saved")
	})
	env.Echo.GET("/done", func(c echo.Context) error {
		page := env.Pages.Page(c, "Done")
		return c.JSON(http.StatusOK, page.Flashes)
	})
	b := env.Browser()

	b.Post("/act", nil)
	first := b.Get("/done")
	second := b.Get("/done")

	assert.JSONEq(t, `[{"Kind":"success","Message":"Saved"}]`, first.Body.String())
	assert.JSONEq(t, `null`, second.Body.String())
}
