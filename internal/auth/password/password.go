// Package password provides one-way credential hashing and verification.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "talenthub/pkg/domain-errors"
)

// Hasher hashes and verifies passwords with bcrypt. The salt is embedded in
// the produced hash string, so no separate storage is needed.
type Hasher struct {
	cost int
}

// New constructs a Hasher. Costs outside bcrypt's supported range fall back
// to the default cost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash creates a bcrypt hash of the provided password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeValidation, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// Verify reports whether a plaintext password matches a bcrypt hash.
// Malformed stored hashes verify as false; this never panics or errors out,
// and bcrypt's comparison is constant-time with respect to mismatch position.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
