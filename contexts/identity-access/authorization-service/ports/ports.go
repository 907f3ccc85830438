package ports

import (
	"context"
	"time"

	"mintmymoment/contexts/identity-access/authorization-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SessionSnapshot is the read-only session view the deriver consumes.
type SessionSnapshot struct {
	Connected bool
	Principal string
}

// SessionSource exposes the current session value owned by the wallet
// session service. Injected at composition time.
type SessionSource interface {
	Snapshot() SessionSnapshot
}

// RoleResolver maps a principal to an authorization level. Concrete
// providers: static allow-list, signed-claim verification, remote lookup.
type RoleResolver interface {
	ResolveRole(ctx context.Context, principal string) (entities.Role, error)
}

// PermissionCache stores derived permission sets keyed by principal.
type PermissionCache interface {
	Get(principal string) ([]string, bool)
	Set(principal string, permissions []string)
	Invalidate(principal string)
}
