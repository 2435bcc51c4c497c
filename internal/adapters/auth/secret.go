package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"portfoliocms/internal/domain"
)

type secretVerifier struct {
	plain string
	hash  []byte
}

// NewSecretVerifier returns a CredentialVerifier for the shared admin secret.
// When hash is non-empty it is treated as a bcrypt hash of the secret and
// takes precedence; otherwise plain is compared in constant time.
func NewSecretVerifier(plain, hash string) (domain.CredentialVerifier, error) {
	if plain == "" && hash == "" {
		return nil, fmt.Errorf("admin secret not configured")
	}
	if hash != "" {
		// Fail fast on a malformed hash rather than rejecting every login.
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
	}
	return &secretVerifier{plain: plain, hash: []byte(hash)}, nil
}

func (v *secretVerifier) Verify(candidate string) error {
	if candidate == "" {
		return domain.ErrUnauthorized
	}
	if len(v.hash) > 0 {
		if err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)); err != nil {
			return domain.ErrUnauthorized
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(v.plain)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}
