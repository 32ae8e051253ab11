package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxCompanyPhotos caps the photo gallery of a company.
const MaxCompanyPhotos = 5

// VideoType is the hosting platform of a company's presentation video.
type VideoType = string

const (
	VideoYouTube VideoType = "YouTube"
	VideoVimeo   VideoType = "Vimeo"
)

// Company is an audiovisual-services company of the catalog.
type Company struct {
	bun.BaseModel  `bun:"table:companies,alias:cmp"`
	ID             uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Company        string       `bun:"company,notnull,unique" json:"company,omitempty"`
	FirstActivity  string       `bun:"first_activity,notnull" json:"firstActivity,omitempty"`
	SecondActivity string       `bun:"second_activity" json:"secondActivity,omitempty"`
	Province       string       `bun:"province,notnull" json:"province,omitempty"`
	City           string       `bun:"city,notnull" json:"city,omitempty"`
	Direction      string       `bun:"direction,notnull" json:"direction,omitempty"`
	Description    string       `bun:"description,notnull" json:"description,omitempty"`
	DescriptionENG string       `bun:"description_eng,notnull" json:"descriptionENG,omitempty"`
	Clients        []string     `bun:"clients,type:jsonb,nullzero" json:"clients,omitempty"`
	Email          string       `bun:"email,notnull" json:"email,omitempty"`
	Phone          string       `bun:"phone,notnull" json:"phone,omitempty"`
	Website        string       `bun:"website,notnull" json:"website,omitempty"`
	URLVideo       string       `bun:"url_video,notnull" json:"urlVideo,omitempty"`
	TypeVideo      VideoType    `bun:"type_video,notnull" json:"typeVideo,omitempty"`
	Logo           Attachment   `bun:"logo,type:jsonb,nullzero" json:"logo"`
	Photos         []Attachment `bun:"photos,type:jsonb,nullzero" json:"photos,omitempty"`
	UserID         uuid.UUID    `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	Public         bool         `bun:"public,notnull,default:true" json:"public"`
	ActiveWhatsapp bool         `bun:"active_whatsapp,notnull,default:false" json:"activeWhatsapp"`
	CreatedAt      *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
