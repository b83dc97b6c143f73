// Package password hashes and verifies credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kbukum/errguard/errors"
)

// MessageInvalidCredentials is the public message for a failed check.
const MessageInvalidCredentials = "Invalid username or password."

// Config configures the hasher.
type Config struct {
	Cost int `yaml:"cost" mapstructure:"cost"`
}

// ApplyDefaults sets cost 12.
func (c *Config) ApplyDefaults() {
	if c.Cost == 0 {
		c.Cost = 12
	}
}

// Validate checks the bcrypt cost range.
func (c *Config) Validate() error {
	if c.Cost < bcrypt.MinCost || c.Cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d (got: %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Cost)
	}
	return nil
}

// Hasher hashes and verifies passwords.
type Hasher struct {
	cost int
}

// NewHasher builds a bcrypt hasher from cfg. A nil cfg uses defaults.
func NewHasher(cfg *Config) *Hasher {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	c.ApplyDefaults()
	return &Hasher{cost: c.Cost}
}

// Hash returns the bcrypt hash of pw. Passwords shorter than 8 bytes or
// longer than bcrypt's 72 byte limit are BadRequestError.
func (h *Hasher) Hash(pw string) (string, error) {
	switch {
	case len(pw) < 8:
		return "", apperrors.BadRequest("Password must be at least 8 characters.")
	case len(pw) > 72:
		return "", apperrors.BadRequest("Password must be at most 72 characters.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify returns nil when pw matches hash. A mismatch is an
// UnauthorizedError; a corrupt hash is an internal error.
func (h *Hasher) Verify(pw, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.Unauthorized(MessageInvalidCredentials)
	default:
		return fmt.Errorf("password: verify: %w", err)
	}
}
