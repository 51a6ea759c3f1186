package views

import (
	"github.com/a-h/templ"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/stats"
	"github.com/eventify/eventify-web/views/layout"
)

type EventsData struct {
	Heading string
	Events  []api.Event
}

func Home(p layout.Page, events []api.Event) templ.Component {
	return render("home.html", p, EventsData{Heading: "Upcoming Events", Events: events})
}

func Events(p layout.Page, events []api.Event) templ.Component {
	return render("events.html", p, EventsData{Heading: "All Events", Events: events})
}

type EventDetailsData struct {
	Event api.Event
	// CanBook is false for visitors who are not logged in.
	CanBook bool
	// TicketID is set when the page was opened from a ticket QR code.
	TicketID string
}

func EventDetails(p layout.Page, d EventDetailsData) templ.Component {
	return render("event_details.html", p, d)
}

type CredentialsData struct {
	Name  string
	Email string
}

func Login(p layout.Page, d CredentialsData) templ.Component {
	return render("login.html", p, d)
}

func Register(p layout.Page, d CredentialsData) templ.Component {
	return render("register.html", p, d)
}

type UserDashboardData struct {
	Identity      auth.Identity
	Registrations []api.Registration
}

func UserDashboard(p layout.Page, d UserDashboardData) templ.Component {
	return render("user_dashboard.html", p, d)
}

func Profile(p layout.Page, identity auth.Identity) templ.Component {
	return render("profile.html", p, identity)
}

func Tickets(p layout.Page, tickets []api.Ticket) templ.Component {
	return render("tickets.html", p, tickets)
}

type TransferData struct {
	TicketID string
	Ticket   *api.Ticket
	Email    string
}

func Transfer(p layout.Page, d TransferData) templ.Component {
	return render("transfer.html", p, d)
}

// MessageData is a page with a single notice and a way onwards.
type MessageData struct {
	Heading   string
	Message   string
	Link      string
	LinkLabel string
	// Registration is shown on booking confirmation.
	Registration *api.Registration
}

func Message(p layout.Page, d MessageData) templ.Component {
	return render("message.html", p, d)
}

// EventFormData drives the create and edit event forms.
type EventFormData struct {
	Heading string
	Action  string
	Submit  string
	Cancel  string
	Event   api.EventInput
	// ShowImage adds the image URL field of the organizer form.
	ShowImage bool
}

func EventForm(p layout.Page, d EventFormData) templ.Component {
	return render("event_form.html", p, d)
}

type OrganizerDashboardData struct {
	Totals stats.Totals
	Events []stats.Event
}

func OrganizerDashboard(p layout.Page, d OrganizerDashboardData) templ.Component {
	return render("organizer_dashboard.html", p, d)
}

func OrganizerEvents(p layout.Page, events []api.Event) templ.Component {
	return render("organizer_events.html", p, events)
}

type EventStatsData struct {
	Event api.Event
	Stats stats.Event
}

func EventStats(p layout.Page, d EventStatsData) templ.Component {
	return render("event_stats.html", p, d)
}

type AttendeesData struct {
	EventID   string
	Title     string
	Attendees []api.Attendee
}

func Attendees(p layout.Page, d AttendeesData) templ.Component {
	return render("attendees.html", p, d)
}

type ExportData struct {
	EventID     string
	Title       string
	Count       int
	DownloadURL string
}

func Export(p layout.Page, d ExportData) templ.Component {
	return render("export.html", p, d)
}

func AdminDashboard(p layout.Page, s api.AdminStats) templ.Component {
	return render("admin_dashboard.html", p, s)
}

type AdminEventsData struct {
	Heading string
	Events  []api.Event
	// Moderation shows approve and reject actions.
	Moderation bool
}

func AdminEvents(p layout.Page, d AdminEventsData) templ.Component {
	return render("admin_events.html", p, d)
}

func Registrations(p layout.Page, regs []api.Registration) templ.Component {
	return render("registrations.html", p, regs)
}

type AccountsData struct {
	Heading  string
	Accounts []api.Account
}

func Accounts(p layout.Page, d AccountsData) templ.Component {
	return render("accounts.html", p, d)
}

func NotFound(p layout.Page, text string) templ.Component {
	return render("not_found.html", p, text)
}

// Loading is shown while a session restore is still in flight.
func Loading(p layout.Page) templ.Component {
	return render("loading.html", p, nil)
}
