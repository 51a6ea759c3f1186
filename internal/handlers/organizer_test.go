package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/internal/stats"
)

type organizerAPI struct {
	mu        sync.Mutex
	attendees map[string][]api.Attendee
	created   api.EventInput
}

func (a *organizerAPI) handler() http.Handler {
	events := []api.Event{
		{ID: "e1", Title: "Summer Concert"},
		{ID: "e2", Title: "Winter Gala"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /organizer/myEvents", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusOK, map[string]any{"events": events})
	})
	mux.HandleFunc("GET /organizer/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, ev := range events {
			if ev.ID == r.PathValue("id") {
				WriteAPIJSON(w, http.StatusOK, map[string]any{"event": ev})
				return
			}
		}
		WriteAPIJSON(w, http.StatusNotFound, map[string]string{"message": "Event not found"})
	})
	mux.HandleFunc("GET /organizer/events/{id}/attendees", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		list := a.attendees[r.PathValue("id")]
		a.mu.Unlock()
		WriteAPIJSON(w, http.StatusOK, map[string]any{"attendees": list})
	})
	mux.HandleFunc("POST /events/createEvent", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&a.created)
		WriteAPIJSON(w, http.StatusCreated, map[string]string{"message": "created"})
	})
	return mux
}

func attendee(name, ticketType string, price float64, booked time.Time) api.Attendee {
	return api.Attendee{
		ID:        name,
		User:      &api.Account{Name: name, Email: strings.ToLower(name) + "@example.com"},
		Ticket:    &api.TicketSummary{Type: ticketType, Price: price},
		CreatedAt: booked,
	}
}

func newOrganizerEnv(t *testing.T, stub *organizerAPI) (*TestEnv, *OrganizerHandler) {
	t.Helper()
	env := NewTestEnv(stub.handler())
	t.Cleanup(env.Close)

	h := NewOrganizerHandler(env.Pages)
	h.now = func() time.Time { return time.UnixMilli(1700000000000) }
	env.Echo.GET("/organizer/dashboard", h.HandleDashboard)
	env.Echo.GET("/organizer/createevent", h.HandleCreate)
	env.Echo.POST("/organizer/createevent", h.HandleCreateSubmit)
	env.Echo.GET("/organizer/eventstats/:eventId", h.HandleStats)
	env.Echo.GET("/organizer/exportattendees/:eventId", h.HandleExport)
	env.Echo.GET("/organizer/exportattendees/:eventId/csv", h.HandleExportCSV)
	return env, h
}

func TestOrganizerEventStats(t *testing.T) {
	booked := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &organizerAPI{attendees: map[string][]api.Attendee{
		"e1": {attendee("Ann", "VIP", 120, booked), attendee("Bo", "General", 40, booked)},
		"e2": {attendee("Cy", "General", 40, booked)},
	}}
	env, h := newOrganizerEnv(t, stub)

	var (
		got []stats.Event
		err error
	)
	env.Echo.GET("/client-check", func(c echo.Context) error {
		got, err = h.eventStats(c)
		return c.NoContent(http.StatusOK)
	})
	env.LoginAs(fakeIdentity(auth.RoleOrganizer)).Get("/client-check")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].EventID)
	assert.Equal(t, 2, got[0].AttendeesCount)
	assert.Equal(t, "e2", got[1].EventID)
	assert.Equal(t, stats.Totals{Events: 2, Attendees: 3, Revenue: 200}, stats.Sum(got))
}

func TestHandleDashboard_RendersTotals(t *testing.T) {
	stub := &organizerAPI{attendees: map[string][]api.Attendee{
		"e1": {attendee("Ann", "VIP", 120, time.Now())},
	}}
	env, _ := newOrganizerEnv(t, stub)

	rec := env.LoginAs(fakeIdentity(auth.RoleOrganizer)).Get("/organizer/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Winter Gala")
	assert.Contains(t, body, `href="/organizer/eventstats/e1"`)
	assert.Contains(t, body, `href="/organizer/myevents"`)
}

func TestHandleCreateSubmit(t *testing.T) {
	stub := &organizerAPI{}
	env, _ := newOrganizerEnv(t, stub)
	b := env.LoginAs(fakeIdentity(auth.RoleOrganizer))

	rec := b.Post("/organizer/createevent", url.Values{
		"title":       {"Spring Fair"},
		"description": {"Outdoor market"},
		"location":    {"Park"},
		"date":        {"2026-04-12"},
		"capacity":    {"150"},
		"price":       {"10"},
		"image":       {"https://img.example.com/fair.png"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, organizerEventsPath, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Spring Fair", stub.created.Title)
	assert.Equal(t, 150, stub.created.Capacity)
	assert.Equal(t, "https://img.example.com/fair.png", stub.created.Image)
	assert.True(t, stub.created.Date.Equal(time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Message: "Event created and pending approval"}}, b.Flashes())

	rec = b.Post("/organizer/createevent", url.Values{"title": {"Spring Fair"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in all required fields.")
}

func TestHandleExportCSV(t *testing.T) {
	booked := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &organizerAPI{attendees: map[string][]api.Attendee{
		"e1": {attendee("Ann", "VIP", 120, booked)},
	}}
	env, _ := newOrganizerEnv(t, stub)
	b := env.LoginAs(fakeIdentity(auth.RoleOrganizer))

	rec := b.Get("/organizer/exportattendees/e1/csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="attendees_e1_1700000000000.csv"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "Name,Email,Ticket Type,Booking Date\nAnn,ann@example.com,VIP,2026-05-01\n", rec.Body.String())

	rec = b.Get("/organizer/exportattendees/e2/csv")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/organizer/exportattendees/e2", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []session.Flash{{Kind: session.FlashWarning, Message: "No attendees to export"}}, b.Flashes())
}

func TestHandleStats(t *testing.T) {
	stub := &organizerAPI{attendees: map[string][]api.Attendee{
		"e1": {attendee("Ann", "VIP", 120, time.Now())},
	}}
	env, _ := newOrganizerEnv(t, stub)
	b := env.LoginAs(fakeIdentity(auth.RoleOrganizer))

	rec := b.Get("/organizer/eventstats/e1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Summer Concert")

	rec = b.Get("/organizer/eventstats/missing")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []session.Flash{{Kind: session.FlashError, Message: "Failed to load statistics"}}, b.Flashes())
}

func TestHandleDelete_ForbiddenKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /organizer/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusForbidden, map[string]string{"message": "You are not the organizer of this event"})
	})
	env := NewTestEnv(mux)
	t.Cleanup(env.Close)
	env.Echo.POST("/organizer/events/:eventId/delete", NewOrganizerHandler(env.Pages).HandleDelete)
	b := env.LoginAs(fakeIdentity(auth.RoleOrganizer))

	rec := b.Post("/organizer/events/other/delete", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, organizerEventsPath, rec.Header().Get(echo.HeaderLocation))
	token, ok := env.Token(b.SessionID)
	assert.True(t, ok)
	assert.Equal(t, "token-"+b.SessionID, token)
	assert.Equal(t, []session.Flash{{Kind: session.FlashError, Message: "You are not the organizer of this event"}}, b.Flashes())
}
