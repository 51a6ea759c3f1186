package auth

// NavLink is one entry of the role-keyed navigation bar.
type NavLink struct {
	Label string
	Path  string
}

// DefaultDashboard is where a freshly logged-in identity lands.
func DefaultDashboard(r Role) string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleOrganizer:
		return "/organizer/dashboard"
	case RoleUser:
		return "/user/dashboard"
	default:
		return HomePath
	}
}

// ProfilePath is the profile view for any role. The profile lives under
// /user because every role is allowed there.
func ProfilePath(Role) string {
	return "/user/profile"
}

// PublicNavLinks are shown to visitors who are not logged in.
func PublicNavLinks() []NavLink {
	return []NavLink{
		{Label: "Events", Path: "/events"},
		{Label: "Login", Path: "/login"},
		{Label: "Register", Path: "/register"},
	}
}

// NavLinks returns the navigation entries for a role.
func NavLinks(r Role) []NavLink {
	switch r {
	case RoleAdmin:
		return []NavLink{
			{Label: "Dashboard", Path: "/admin/dashboard"},
			{Label: "All Events", Path: "/admin/allEvents"},
			{Label: "Users", Path: "/admin/allusers"},
			{Label: "Organizers", Path: "/admin/allorganizers"},
			{Label: "Registrations", Path: "/admin/registrations"},
			{Label: "Pending Events", Path: "/admin/pending-events"},
			{Label: "Create Event", Path: "/admin/events/create"},
		}
	case RoleOrganizer:
		return []NavLink{
			{Label: "Dashboard", Path: "/organizer/dashboard"},
			{Label: "My Events", Path: "/organizer/myevents"},
			{Label: "Create Event", Path: "/organizer/createevent"},
		}
	case RoleUser:
		return []NavLink{
			{Label: "Events", Path: "/"},
			{Label: "My Tickets", Path: "/user/my-tickets"},
			{Label: "Profile", Path: "/user/profile"},
			{Label: "Dashboard", Path: "/user/dashboard"},
		}
	default:
		return nil
	}
}

// NavFor picks the navigation entries for a session state. Nothing is shown
// while the session is loading.
func NavFor(s State) []NavLink {
	if s.Loading {
		return nil
	}
	if !s.IsAuthenticated {
		return PublicNavLinks()
	}
	return NavLinks(s.Role())
}
