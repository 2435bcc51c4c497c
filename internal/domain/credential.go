package domain

import "time"

// CredentialVerifier checks a candidate admin credential against the
// server-held secret without touching stored data.
type CredentialVerifier interface {
	// Verify returns nil when the candidate matches, ErrUnauthorized otherwise.
	Verify(candidate string) error
}

// TokenIssuer issues short-lived capability tokens for a verified admin.
type TokenIssuer interface {
	Issue(expiry time.Duration) (token string, expiresAt time.Time, err error)
}

// TokenVerifier verifies a capability token.
type TokenVerifier interface {
	Verify(token string) error
}
