package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Role is one of the three account kinds known to the platform.
// Roles are flat: admin does not implicitly include organizer or user.
type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ErrUnknownRole is returned when a role string is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// AllRoles lists every known role in declaration order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleOrganizer, RoleAdmin}
}

// ParseRole converts a string into a Role. Matching is exact after trimming spaces.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON rejects role values outside the enumeration so that a malformed
// identity never reaches the session.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string: %w", err)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is the logged-in account as returned by the identity endpoint.
type Identity struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// UnmarshalJSON accepts both "id" and the backend's "_id" spelling, and the
// older "profilePicture" key for the avatar.
func (i *Identity) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                string `json:"id"`
		MongoID           string `json:"_id"`
		Name              string `json:"name"`
		Email             string `json:"email"`
		Role              *Role  `json:"role"`
		ProfilePictureURL string `json:"profilePictureUrl"`
		ProfilePicture    string `json:"profilePicture"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Role == nil {
		return fmt.Errorf("%w: missing", ErrUnknownRole)
	}

	id := raw.ID
	if id == "" {
		id = raw.MongoID
	}
	picture := raw.ProfilePictureURL
	if picture == "" {
		picture = raw.ProfilePicture
	}

	*i = Identity{
		ID:                id,
		Name:              raw.Name,
		Email:             raw.Email,
		Role:              *raw.Role,
		ProfilePictureURL: picture,
	}
	return nil
}

// DisplayName returns the name to show in navigation, falling back to the email.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Email != "" {
		return i.Email
	}
	return "User"
}

// State is a point-in-time view of a session as seen by the guard and the views.
type State struct {
	Identity        *Identity
	IsAuthenticated bool
	Loading         bool
}

// Role returns the identity role, or "" when nobody is logged in.
func (s State) Role() Role {
	if !s.IsAuthenticated || s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
