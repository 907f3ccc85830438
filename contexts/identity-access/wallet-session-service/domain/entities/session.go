package entities

// Session tracks whether the local agent is linked to an external signing
// identity. Balance is a major-unit 2-decimal string ("0.00" when unknown).
type Session struct {
	Connected bool   `json:"connected"`
	Principal string `json:"principal"`
	Balance   string `json:"balance"`
}

// Disconnected is the initial session value at process start and the value
// every disconnect resets to.
func Disconnected() Session {
	return Session{Connected: false, Principal: "", Balance: "0.00"}
}
