package domain

// AuthMethod indicates how the catalog session authenticates.
type AuthMethod string

// Supported authentication methods.
const (
	// AuthMethodNone sends no credentials. Reads of public items still work.
	AuthMethodNone AuthMethod = "none"

	// AuthMethodToken sends a bearer token.
	AuthMethodToken AuthMethod = "token"
)
