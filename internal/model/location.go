package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxLocationPhotos caps the photo gallery of a location.
const MaxLocationPhotos = 15

// Provinces is the closed set of Ecuadorian provinces a location may belong to.
var Provinces = []string{
	"Azuay", "Bolívar", "Cañar", "Carchi", "Chimborazo", "Cotopaxi",
	"El Oro", "Esmeraldas", "Galápagos", "Guayas", "Imbabura", "Loja",
	"Los Ríos", "Manabí", "Morona Santiago", "Napo", "Orellana", "Pastaza",
	"Pichincha", "Santa Elena", "Santo Domingo", "Sucumbíos", "Tungurahua",
	"Zamora",
}

// ValidProvince checks a province name against the closed set.
func ValidProvince(p string) bool {
	for _, known := range Provinces {
		if known == p {
			return true
		}
	}
	return false
}

// Location is a filming location of the catalog.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:loc"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string       `bun:"name,notnull,unique" json:"name,omitempty"`
	Description   string       `bun:"description,notnull" json:"description,omitempty"`
	Province      string       `bun:"province,notnull" json:"province,omitempty"`
	City          string       `bun:"city,notnull" json:"city,omitempty"`
	Weather       string       `bun:"weather,notnull" json:"weather,omitempty"`
	Accessibility string       `bun:"accessibility,notnull" json:"accessibility,omitempty"`
	Direction     string       `bun:"direction,notnull" json:"direction,omitempty"`
	Map           string       `bun:"map,notnull" json:"map,omitempty"`
	Contact       string       `bun:"contact,notnull" json:"contact,omitempty"`
	Photos        []Attachment `bun:"photos,type:jsonb,nullzero" json:"photos,omitempty"`
	UserID        uuid.UUID    `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
