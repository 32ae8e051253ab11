package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserProfile holds the public-facing data a user attaches to their account.
// At most one profile exists per user.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:prf"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"firstName,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"lastName,omitempty"`
	Profession    string     `bun:"profession" json:"profession,omitempty"`
	Phone         string     `bun:"phone" json:"phone,omitempty"`
	City          string     `bun:"city" json:"city,omitempty"`
	Country       string     `bun:"country" json:"country,omitempty"`
	Bio           string     `bun:"bio" json:"bio,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"userId,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
