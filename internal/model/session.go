package model

// SessionState is the process-visible authentication state.
// It is replaced wholesale on every transition, never partially mutated.
type SessionState struct {
	// Account is the logged-in account projection, or nil when anonymous
	Account *SanitizedAccount
	// Authenticated is true iff Account is present
	Authenticated bool
	// Token is the opaque session token minted at login/registration,
	// or empty when anonymous
	Token string
}

// AnonymousState returns the initial session state
func AnonymousState() SessionState {
	return SessionState{}
}
