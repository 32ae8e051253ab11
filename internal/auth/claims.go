package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose scopes a token to the single flow it was minted for. Each
// purpose signs with its own secret so a leaked mail token can never pass as
// a session token.
type TokenPurpose string

const (
	PurposeSession         TokenPurpose = "session"
	PurposeVerifyEmail     TokenPurpose = "verify-email"
	PurposeRecoverPassword TokenPurpose = "recover-password"
)

// SessionClaims is the payload of a login token. It carries identity only,
// never password material and never a role: roles are re-read from storage
// at authorization time.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// UserID returns the subject identifier.
func (c *SessionClaims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time, zero when absent.
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time, zero when absent.
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ActionClaims is the payload of a mail-action token: email verification and
// password recovery links.
type ActionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
}
