package application

import (
	"context"
	"log/slog"
	"time"

	"mintmymoment/contexts/identity-access/authorization-service/domain/entities"
	"mintmymoment/contexts/identity-access/authorization-service/domain/services"
	"mintmymoment/contexts/identity-access/authorization-service/ports"
)

// Service derives role and permissions from the current session and answers
// capability queries. Every predicate is deny-by-default and never errors.
type Service struct {
	Sessions ports.SessionSource
	Resolver ports.RoleResolver
	Cache    ports.PermissionCache
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Profile recomputes the derived user for the current session principal.
// The second return is false when no authenticated session exists.
func (s Service) Profile(ctx context.Context) (entities.Profile, bool) {
	snapshot := s.snapshot()
	if !snapshot.Connected || snapshot.Principal == "" {
		return entities.Profile{}, false
	}

	role := s.resolveRole(ctx, snapshot.Principal)
	return entities.Profile{
		Principal:   snapshot.Principal,
		Role:        role,
		Permissions: s.permissionsFor(ctx, snapshot.Principal, role),
		Verified:    true,
		CreatedAt:   s.now(),
	}, true
}

// HasPermission reports whether the current user holds a permission.
// False when no user is loaded.
func (s Service) HasPermission(ctx context.Context, permission string) bool {
	profile, ok := s.Profile(ctx)
	if !ok {
		return false
	}
	return services.GrantsPermission(profile.Permissions, permission)
}

// CanMintNFT requires a connected session holding the mint permission.
func (s Service) CanMintNFT(ctx context.Context) bool {
	if !s.snapshot().Connected {
		return false
	}
	return s.HasPermission(ctx, services.PermMintNFT)
}

// CanTransferNFT grants transfer of an owned token to any authenticated
// user; the moderation override extends it to tokens owned by others.
func (s Service) CanTransferNFT(ctx context.Context, ownerPrincipal string) bool {
	profile, ok := s.Profile(ctx)
	if !ok {
		return false
	}
	if ownerPrincipal != "" && ownerPrincipal == profile.Principal {
		return true
	}
	return services.GrantsPermission(profile.Permissions, services.PermModerateAll)
}

// CanAccessAdmin gates the admin surface.
func (s Service) CanAccessAdmin(ctx context.Context) bool {
	return s.HasPermission(ctx, services.PermAdminDashboard)
}

// CanModerateContent is true for scoped or platform-wide moderation rights.
func (s Service) CanModerateContent(ctx context.Context) bool {
	return s.HasPermission(ctx, services.PermModerateContent) ||
		s.HasPermission(ctx, services.PermModerateAll)
}

func (s Service) IsAdmin(ctx context.Context) bool {
	profile, ok := s.Profile(ctx)
	return ok && profile.Role == entities.RoleAdmin
}

func (s Service) IsModerator(ctx context.Context) bool {
	profile, ok := s.Profile(ctx)
	return ok && profile.Role == entities.RoleModerator
}

// InvalidateSession drops cached derivations for a principal. Wired as a
// session transition subscriber at composition time.
func (s Service) InvalidateSession(principal string) {
	if s.Cache != nil && principal != "" {
		s.Cache.Invalidate(principal)
	}
}

func (s Service) resolveRole(ctx context.Context, principal string) entities.Role {
	if s.Resolver == nil {
		return entities.RoleUser
	}
	role, err := s.Resolver.ResolveRole(ctx, principal)
	if err != nil {
		ResolveLogger(s.Logger).Warn("role resolution failed, deny by default",
			"event", "authz_role_resolution_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"principal", principal,
			"error", err.Error(),
		)
		return entities.RoleUser
	}
	return role
}

func (s Service) permissionsFor(ctx context.Context, principal string, role entities.Role) []string {
	_ = ctx
	if s.Cache != nil {
		if permissions, ok := s.Cache.Get(principal); ok {
			return permissions
		}
	}
	permissions := services.PermissionsForRole(role)
	if s.Cache != nil {
		s.Cache.Set(principal, permissions)
	}
	return permissions
}

func (s Service) snapshot() ports.SessionSnapshot {
	if s.Sessions == nil {
		return ports.SessionSnapshot{}
	}
	return s.Sessions.Snapshot()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
