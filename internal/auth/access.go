package auth

import (
	"slices"
	"strings"
)

// Access is the authorization requirement a route declares: either public,
// or an explicit set of roles.
type Access struct {
	public bool
	roles  []Role
}

// Public returns an Access that bypasses the guard.
func Public() Access {
	return Access{public: true}
}

// Roles returns an Access granted to exactly the given roles.
// An empty list denies every authenticated identity.
func Roles(roles ...Role) Access {
	set := make([]Role, 0, len(roles))
	for _, r := range roles {
		if !slices.Contains(set, r) {
			set = append(set, r)
		}
	}
	return Access{roles: set}
}

var (
	// AnyAccount is the allow-set used by the /user subtree.
	AnyAccount = Roles(RoleUser, RoleOrganizer, RoleAdmin)
	// OrganizersAndAdmins is the allow-set used by the /organizer subtree.
	OrganizersAndAdmins = Roles(RoleOrganizer, RoleAdmin)
	// AdminsOnly is the allow-set used by the /admin subtree.
	AdminsOnly = Roles(RoleAdmin)
)

// IsPublic reports whether the route skips the guard.
func (a Access) IsPublic() bool {
	return a.public
}

// Allows reports exact membership of r in the allow-set.
func (a Access) Allows(r Role) bool {
	if a.public {
		return true
	}
	return slices.Contains(a.roles, r)
}

// AllowedRoles returns a copy of the allow-set.
func (a Access) AllowedRoles() []Role {
	return slices.Clone(a.roles)
}

func (a Access) String() string {
	if a.public {
		return "public"
	}
	names := make([]string, len(a.roles))
	for i, r := range a.roles {
		names[i] = string(r)
	}
	return "[" + strings.Join(names, ",") + "]"
}
