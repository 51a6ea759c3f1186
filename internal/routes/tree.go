package routes

import (
	"net/http"

	"github.com/eventify/eventify-web/internal/auth"
)

// View ids. Handlers are looked up by these names when the tree is mounted.
const (
	ViewHome           = "home"
	ViewLogin          = "auth.login"
	ViewLoginSubmit    = "auth.login.submit"
	ViewRegister       = "auth.register"
	ViewRegisterSubmit = "auth.register.submit"
	ViewLogout         = "auth.logout"
	ViewEvents         = "events.list"
	ViewEventDetails   = "events.details"
	ViewEventBook      = "events.book"

	ViewUserDashboard      = "user.dashboard"
	ViewUserProfile        = "user.profile"
	ViewUserProfileUpdate  = "user.profile.update"
	ViewUserTickets        = "user.tickets"
	ViewUserTicketCancel   = "user.tickets.cancel"
	ViewUserTicketTransfer = "user.tickets.transfer"
	ViewUserTicketPDF      = "user.tickets.pdf"
	ViewUserRegCancel      = "user.registrations.cancel"
	ViewUserBookingSuccess = "user.booking.success"
	ViewUserPaymentSuccess = "user.payment.success"
	ViewUserPaymentCancel  = "user.payment.cancel"
	ViewUserTransfer       = "user.transfer"
	ViewUserTransferSubmit = "user.transfer.submit"
	ViewUserCreateEvent    = "user.create-event"

	ViewOrganizerDashboard    = "organizer.dashboard"
	ViewOrganizerCreate       = "organizer.create"
	ViewOrganizerCreateSubmit = "organizer.create.submit"
	ViewOrganizerEdit         = "organizer.edit"
	ViewOrganizerEditSubmit   = "organizer.edit.submit"
	ViewOrganizerStats        = "organizer.stats"
	ViewOrganizerExport       = "organizer.export"
	ViewOrganizerExportCSV    = "organizer.export.csv"
	ViewOrganizerEvents       = "organizer.events"
	ViewOrganizerDelete       = "organizer.delete"
	ViewOrganizerAttendees    = "organizer.attendees"

	ViewAdminDashboard     = "admin.dashboard"
	ViewAdminPending       = "admin.pending"
	ViewAdminStatus        = "admin.status"
	ViewAdminRegistrations = "admin.registrations"
	ViewAdminEvents        = "admin.events"
	ViewAdminCreate        = "admin.create"
	ViewAdminCreateSubmit  = "admin.create.submit"
	ViewAdminDelete        = "admin.delete"
	ViewAdminOrganizers    = "admin.organizers"
	ViewAdminUsers         = "admin.users"
	ViewAdminEdit          = "admin.edit"
	ViewAdminEditSubmit    = "admin.edit.submit"
)

// Not-found texts.
const (
	NotFoundGlobal    = "404 Not Found"
	NotFoundUser      = "404 - User Section Page Not Found"
	NotFoundOrganizer = "404 - Organizer Section Page Not Found"
	NotFoundAdmin     = "404 - Admin Section Page Not Found"
)

func get(path, view string, access auth.Access) Declaration {
	return Declaration{Method: http.MethodGet, Path: path, View: view, Access: access}
}

func post(path, view string, access auth.Access) Declaration {
	return Declaration{Method: http.MethodPost, Path: path, View: view, Access: access}
}

// Default is the routing table of the web frontend.
func Default() Tree {
	public := auth.Public()
	anyone := auth.AnyAccount
	staff := auth.OrganizersAndAdmins
	admin := auth.AdminsOnly

	return Tree{
		Routes: []Declaration{
			get("/", ViewHome, public),
			get("/login", ViewLogin, public),
			post("/login", ViewLoginSubmit, public),
			get("/register", ViewRegister, public),
			post("/register", ViewRegisterSubmit, public),
			post("/logout", ViewLogout, public),
			get("/events", ViewEvents, public),
			get("/events/:eventId", ViewEventDetails, public),
			post("/events/:eventId/book", ViewEventBook, anyone),
		},
		Subtrees: []Subtree{
			{
				Prefix:   "/user",
				NotFound: NotFoundUser,
				Routes: []Declaration{
					get("", ViewUserDashboard, anyone),
					get("dashboard", ViewUserDashboard, anyone),
					get("profile", ViewUserProfile, anyone),
					post("profile", ViewUserProfileUpdate, anyone),
					get("my-tickets", ViewUserTickets, anyone),
					post("tickets/:ticketId/cancel", ViewUserTicketCancel, anyone),
					post("tickets/:ticketId/transfer", ViewUserTicketTransfer, anyone),
					get("tickets/:ticketId/pdf", ViewUserTicketPDF, anyone),
					post("registrations/:registrationId/cancel", ViewUserRegCancel, anyone),
					get("booking-success", ViewUserBookingSuccess, anyone),
					get("payment/success", ViewUserPaymentSuccess, anyone),
					get("payment/cancel", ViewUserPaymentCancel, anyone),
					get("transfer-ticket", ViewUserTransfer, anyone),
					post("transfer-ticket", ViewUserTransferSubmit, anyone),
					get("create-event", ViewUserCreateEvent, staff),
				},
			},
			{
				Prefix:   "/organizer",
				NotFound: NotFoundOrganizer,
				Routes: []Declaration{
					get("", ViewOrganizerDashboard, staff),
					get("dashboard", ViewOrganizerDashboard, staff),
					get("createevent", ViewOrganizerCreate, staff),
					post("createevent", ViewOrganizerCreateSubmit, staff),
					get("editevent/:eventId", ViewOrganizerEdit, staff),
					post("editevent/:eventId", ViewOrganizerEditSubmit, staff),
					get("eventstats/:eventId", ViewOrganizerStats, staff),
					get("exportattendees/:eventId", ViewOrganizerExport, staff),
					get("exportattendees/:eventId/csv", ViewOrganizerExportCSV, staff),
					get("myevents", ViewOrganizerEvents, staff),
					post("events/:eventId/delete", ViewOrganizerDelete, staff),
					get("viewattendees/:eventId", ViewOrganizerAttendees, staff),
				},
			},
			{
				Prefix:   "/admin",
				NotFound: NotFoundAdmin,
				Routes: []Declaration{
					get("", ViewAdminDashboard, admin),
					get("dashboard", ViewAdminDashboard, admin),
					get("pending-events", ViewAdminPending, admin),
					post("events/:eventId/status", ViewAdminStatus, admin),
					get("registrations", ViewAdminRegistrations, admin),
					get("allEvents", ViewAdminEvents, admin),
					get("events/create", ViewAdminCreate, admin),
					post("events/create", ViewAdminCreateSubmit, admin),
					post("events/:eventId/delete", ViewAdminDelete, admin),
					get("allorganizers", ViewAdminOrganizers, admin),
					get("allusers", ViewAdminUsers, admin),
					get("edit-event/:id", ViewAdminEdit, admin),
					post("edit-event/:id", ViewAdminEditSubmit, admin),
				},
			},
		},
		NotFound: NotFoundGlobal,
	}
}
