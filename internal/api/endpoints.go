package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eventify/eventify-web/internal/auth"
)

type messageResponse struct {
	Message string `json:"message"`
}

func path(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

// Me returns the identity that owns the current bearer token.
func (c *Client) Me(ctx context.Context) (*auth.Identity, error) {
	var resp struct {
		User *auth.Identity `json:"user"`
	}
	if err := c.Get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: /auth/me without user", ErrMalformedResponse)
	}
	return resp.User, nil
}

// LoginResult is the credential issued for a successful login.
type LoginResult struct {
	Token string
	User  auth.Identity
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp struct {
		Token string         `json:"token"`
		User  *auth.Identity `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: /auth/login without token or user", ErrMalformedResponse)
	}
	return &LoginResult{Token: resp.Token, User: *resp.User}, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.Post(ctx, "/auth/register", req, nil)
}

type eventsResponse struct {
	Events []Event `json:"events"`
}

type eventResponse struct {
	Event *Event `json:"event"`
}

func (c *Client) listEvents(ctx context.Context, p string) ([]Event, error) {
	var resp eventsResponse
	if err := c.Get(ctx, p, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) getEvent(ctx context.Context, p string) (*Event, error) {
	var resp eventResponse
	if err := c.Get(ctx, p, &resp); err != nil {
		return nil, err
	}
	if resp.Event == nil {
		return nil, fmt.Errorf("%w: %s without event", ErrMalformedResponse, p)
	}
	return resp.Event, nil
}

func (c *Client) mutate(ctx context.Context, method, p string, body any) (string, error) {
	var resp messageResponse
	if err := c.Do(ctx, method, p, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Events lists every event.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "/events")
}

// ApprovedEvents lists the events visible to attendees.
func (c *Client) ApprovedEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "/events/approved")
}

func (c *Client) Event(ctx context.Context, id string) (*Event, error) {
	return c.getEvent(ctx, path("/events/%s", id))
}

// CreateEvent submits an organizer event for approval.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	return c.mutate(ctx, "POST", "/events/createEvent", in)
}

// Checkout starts a payment session and returns the provider URL.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.Post(ctx, "/payment/checkout", req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// ConfirmBooking confirms a finished checkout and returns the registration.
func (c *Client) ConfirmBooking(ctx context.Context, sessionID string) (*Registration, error) {
	var resp struct {
		Registration *Registration `json:"registration"`
	}
	body := map[string]string{"sessionId": sessionID}
	if err := c.Post(ctx, "/payment/confirm", body, &resp); err != nil {
		return nil, err
	}
	return resp.Registration, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, sessionID string) (*PaymentConfirmation, error) {
	var resp PaymentConfirmation
	body := map[string]string{"sessionId": sessionID}
	if err := c.Post(ctx, "/payment/confirm/payment", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type userResponse struct {
	Message string         `json:"message"`
	User    *auth.Identity `json:"user"`
}

func (c *Client) Profile(ctx context.Context) (*auth.Identity, error) {
	var resp userResponse
	if err := c.Get(ctx, "/user/profile", &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: /user/profile without user", ErrMalformedResponse)
	}
	return resp.User, nil
}

// UpdateProfile returns the API message and the updated user, which may be nil.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (string, *auth.Identity, error) {
	var resp userResponse
	if err := c.Put(ctx, "/user/putprofile", in, &resp); err != nil {
		return "", nil, err
	}
	return resp.Message, resp.User, nil
}

func (c *Client) MyRegistrations(ctx context.Context) ([]Registration, error) {
	var resp struct {
		Registrations []Registration `json:"registrations"`
	}
	if err := c.Get(ctx, "/registration/my-tickets", &resp); err != nil {
		return nil, err
	}
	return resp.Registrations, nil
}

func (c *Client) CancelRegistration(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, "POST", path("/registration/cancel/%s", id), nil)
}

func (c *Client) MyTickets(ctx context.Context) ([]Ticket, error) {
	var resp struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := c.Get(ctx, "/tickets/my-tickets", &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

func (c *Client) CancelTicket(ctx context.Context, id string) (string, error) {
	return c.mutate(ctx, "DELETE", path("/tickets/cancel/%s", id), nil)
}

func (c *Client) TransferTicket(ctx context.Context, id, recipientEmail string) (string, error) {
	body := map[string]string{"recipientEmail": recipientEmail}
	return c.mutate(ctx, "POST", path("/tickets/transfer/%s", id), body)
}

func (c *Client) OrganizerEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "/organizer/myEvents")
}

func (c *Client) OrganizerEvent(ctx context.Context, id string) (*Event, error) {
	return c.getEvent(ctx, path("/organizer/events/%s", id))
}

func (c *Client) UpdateOrganizerEvent(ctx context.Context, id string, in EventInput) error {
	return c.Put(ctx, path("/organizer/events/%s", id), in, nil)
}

func (c *Client) DeleteOrganizerEvent(ctx context.Context, id string) error {
	return c.Delete(ctx, path("/organizer/events/%s", id), nil)
}

func (c *Client) Attendees(ctx context.Context, eventID string) ([]Attendee, error) {
	var resp struct {
		Attendees []Attendee `json:"attendees"`
	}
	if err := c.Get(ctx, path("/organizer/events/%s/attendees", eventID), &resp); err != nil {
		return nil, err
	}
	return resp.Attendees, nil
}

func (c *Client) AdminDashboard(ctx context.Context) (*AdminStats, error) {
	var resp struct {
		Stats *AdminStats `json:"stats"`
	}
	if err := c.Get(ctx, "/admin/dashboard", &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return &AdminStats{}, nil
	}
	return resp.Stats, nil
}

func (c *Client) PendingEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "/admin/pending-events")
}

func (c *Client) AdminEvents(ctx context.Context) ([]Event, error) {
	return c.listEvents(ctx, "/admin/allEvents")
}

func (c *Client) AdminEvent(ctx context.Context, id string) (*Event, error) {
	return c.getEvent(ctx, path("/admin/events/%s", id))
}

func (c *Client) UpdateAdminEvent(ctx context.Context, id string, in EventInput) error {
	return c.Put(ctx, path("/admin/events/%s", id), in, nil)
}

func (c *Client) DeleteAdminEvent(ctx context.Context, id string) error {
	return c.Delete(ctx, path("/admin/events/%s", id), nil)
}

// SetEventStatus approves or rejects an event.
func (c *Client) SetEventStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.Put(ctx, path("/admin/events/%s/status", id), body, nil)
}

func (c *Client) AdminCreateEvent(ctx context.Context, in EventInput) (string, error) {
	return c.mutate(ctx, "POST", "/admin/events/create", in)
}

func (c *Client) AdminRegistrations(ctx context.Context) ([]Registration, error) {
	var resp struct {
		Registrations []Registration `json:"registrations"`
	}
	if err := c.Get(ctx, "/admin/registrations", &resp); err != nil {
		return nil, err
	}
	return resp.Registrations, nil
}

func (c *Client) Users(ctx context.Context) ([]Account, error) {
	var resp struct {
		Users []Account `json:"users"`
	}
	if err := c.Get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) Organizers(ctx context.Context) ([]Account, error) {
	var resp struct {
		Organizers []Account `json:"organizers"`
	}
	if err := c.Get(ctx, "/admin/organizers", &resp); err != nil {
		return nil, err
	}
	return resp.Organizers, nil
}
