package allowlist

import (
	"context"
	"strings"

	"mintmymoment/contexts/identity-access/authorization-service/domain/entities"
)

// Resolver resolves roles against static allow-lists. The admin list is
// checked before the moderator list; first match wins, no match means the
// regular user role. Lists are fixed at construction.
type Resolver struct {
	admins     map[string]struct{}
	moderators map[string]struct{}
}

func NewResolver(admins, moderators []string) *Resolver {
	r := &Resolver{
		admins:     make(map[string]struct{}, len(admins)),
		moderators: make(map[string]struct{}, len(moderators)),
	}
	for _, principal := range admins {
		if principal = strings.TrimSpace(principal); principal != "" {
			r.admins[principal] = struct{}{}
		}
	}
	for _, principal := range moderators {
		if principal = strings.TrimSpace(principal); principal != "" {
			r.moderators[principal] = struct{}{}
		}
	}
	return r
}

func (r *Resolver) ResolveRole(_ context.Context, principal string) (entities.Role, error) {
	if _, ok := r.admins[principal]; ok {
		return entities.RoleAdmin, nil
	}
	if _, ok := r.moderators[principal]; ok {
		return entities.RoleModerator, nil
	}
	return entities.RoleUser, nil
}
