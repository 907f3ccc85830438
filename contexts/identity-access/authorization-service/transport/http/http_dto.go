package httptransport

import "time"

// CheckPermissionRequest is the request body for single-permission evaluation.
type CheckPermissionRequest struct {
	Permission string `json:"permission"`
}

// CheckPermissionResponse describes one permission decision.
type CheckPermissionResponse struct {
	Permission string    `json:"permission"`
	Allowed    bool      `json:"allowed"`
	Reason     string    `json:"reason"`
	CheckedAt  time.Time `json:"checked_at"`
}

// ProfileResponse is the derived user view for HTTP consumers.
type ProfileResponse struct {
	Authenticated bool      `json:"authenticated"`
	Principal     string    `json:"principal,omitempty"`
	Role          string    `json:"role,omitempty"`
	Permissions   []string  `json:"permissions,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
