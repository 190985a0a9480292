// Package common contains shared constants and sentinel errors used across
// corpchat components.
package common

const (
	// AuthorizationHeaderName carries the session credential on API requests.
	AuthorizationHeaderName = "Authorization"

	// TokenScheme prefixes the credential inside the Authorization header:
	//
	//	Authorization: Token <credential>
	TokenScheme = "Token"
)

// Field constraints shared by the client forms and the server validators.
const (
	UsernameMinLen   = 3
	UsernameMaxLen   = 150
	PasswordMinLen   = 6
	MessageMinLen    = 1
	MessageMaxLen    = 5000
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// AuthorizationValue formats a credential for the Authorization header.
func AuthorizationValue(credential string) string {
	return TokenScheme + " " + credential
}
