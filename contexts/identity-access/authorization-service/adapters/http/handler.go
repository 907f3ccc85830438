package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "mintmymoment/contexts/identity-access/authorization-service/application"
	httptransport "mintmymoment/contexts/identity-access/authorization-service/transport/http"
)

// Handler maps HTTP DTOs to capability queries.
type Handler struct {
	Authz  application.Service
	Logger *slog.Logger
}

// CheckPermissionHandler evaluates one permission for the current session user.
func (h Handler) CheckPermissionHandler(
	ctx context.Context,
	request httptransport.CheckPermissionRequest,
) httptransport.CheckPermissionResponse {
	permission := strings.TrimSpace(request.Permission)
	allowed := permission != "" && h.Authz.HasPermission(ctx, permission)

	reason := "permission_granted"
	if !allowed {
		reason = "permission_missing"
		if _, ok := h.Authz.Profile(ctx); !ok {
			reason = "no_active_session"
		}
		application.ResolveLogger(h.Logger).Debug("http authz check denied",
			"event", "authz_http_check_denied",
			"module", "identity-access/authorization-service",
			"layer", "transport",
			"permission", permission,
			"reason", reason,
		)
	}

	return httptransport.CheckPermissionResponse{
		Permission: permission,
		Allowed:    allowed,
		Reason:     reason,
		CheckedAt:  time.Now().UTC(),
	}
}

// ProfileHandler returns the derived user for the current session.
func (h Handler) ProfileHandler(ctx context.Context) httptransport.ProfileResponse {
	profile, ok := h.Authz.Profile(ctx)
	if !ok {
		return httptransport.ProfileResponse{Authenticated: false}
	}
	return httptransport.ProfileResponse{
		Authenticated: true,
		Principal:     profile.Principal,
		Role:          string(profile.Role),
		Permissions:   profile.Permissions,
		Verified:      profile.Verified,
		CreatedAt:     profile.CreatedAt,
	}
}
