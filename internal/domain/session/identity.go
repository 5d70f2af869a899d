// Package session defines the authenticated identity and the session state
// machine's vocabulary. The identity is owned by the session service; other
// layers only ever read copies of it.
package session

// State is the session controller's current position in its lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
	StateLoggingOut
)

// String returns the wire label for a state.
func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateLoggingOut:
		return "logging-out"
	default:
		return "unauthenticated"
	}
}

// Identity is the client-side view of who is signed in. The persisted record
// uses the same JSON shape under the "user" key.
type Identity struct {
	Username        string `json:"username"`
	DisplayName     string `json:"displayName,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	ProfileRef      string `json:"profileRef,omitempty"`
	Language        string `json:"language,omitempty"` // stored preference flag only
}

// Anonymous returns the zero identity used outside an authenticated session.
func Anonymous() Identity {
	return Identity{}
}
