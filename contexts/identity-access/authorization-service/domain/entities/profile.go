package entities

import "time"

// Role is the authorization level derived for a principal.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Profile is the derived user view of the current session principal.
// It is recomputed whenever the session identity changes and never persisted.
type Profile struct {
	Principal   string    `json:"principal"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasPermission reports membership in the profile's permission set.
func (p Profile) HasPermission(permission string) bool {
	for _, candidate := range p.Permissions {
		if candidate == permission {
			return true
		}
	}
	return false
}
