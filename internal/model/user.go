package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleAdmin may manage every record and list users
	RoleAdmin UserRole = "admin"
	// RoleCreator may publish catalog entries
	RoleCreator UserRole = "creator"
	// RoleViewer is the default role for new registrations
	RoleViewer UserRole = "viewer"
)

// ValidRole checks the role against the closed set.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleViewer:
		return true
	default:
		return false
	}
}

// User is the credential record backing authentication and authorization.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	Validation    bool       `bun:"validation,notnull,default:false" json:"validation"`
	ProfileID     *uuid.UUID `bun:"profile_id,nullzero" json:"profile,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
