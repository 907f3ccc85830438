package httptransport

// SessionResponse mirrors the session value for HTTP consumers.
type SessionResponse struct {
	Connected bool   `json:"connected"`
	Principal string `json:"principal,omitempty"`
	Balance   string `json:"balance"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
