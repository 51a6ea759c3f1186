package auth

// Outcome is the result of evaluating a route's access against a session.
type Outcome int

const (
	// Pending means the session is still being restored; render a loading indicator.
	Pending Outcome = iota
	// DeniedUnauthenticated means nobody is logged in; go to the login view.
	DeniedUnauthenticated
	// DeniedRole means the identity's role is not in the allow-set; go home.
	DeniedRole
	// Granted means the view may render.
	Granted
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case DeniedUnauthenticated:
		return "denied_unauthenticated"
	case DeniedRole:
		return "denied_role"
	case Granted:
		return "granted"
	default:
		return "unknown"
	}
}

const (
	// LoginPath is where unauthenticated visitors of protected views are sent.
	LoginPath = "/login"
	// HomePath is where authenticated visitors without the required role are sent.
	HomePath = "/"
)

// Decision is the outcome plus the redirect target for the denied outcomes.
type Decision struct {
	Outcome  Outcome
	Redirect string
}

// Decide evaluates access for the given session state.
// Public access is always granted, even while the session is loading.
func Decide(state State, access Access) Decision {
	if access.IsPublic() {
		return Decision{Outcome: Granted}
	}
	if state.Loading {
		return Decision{Outcome: Pending}
	}
	if !state.IsAuthenticated || state.Identity == nil {
		return Decision{Outcome: DeniedUnauthenticated, Redirect: LoginPath}
	}
	if !access.Allows(state.Identity.Role) {
		return Decision{Outcome: DeniedRole, Redirect: HomePath}
	}
	return Decision{Outcome: Granted}
}
