package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxProjectStills caps the stills gallery of a project.
const MaxProjectStills = 10

// AudiovisualProject is a film or series produced in the country.
type AudiovisualProject struct {
	bun.BaseModel     `bun:"table:audiovisual_projects,alias:prj"`
	ID                uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name              string       `bun:"name,notnull,unique" json:"name,omitempty"`
	Director          string       `bun:"director,notnull" json:"director,omitempty"`
	Producer          string       `bun:"producer,notnull" json:"producer,omitempty"`
	ProductionCompany string       `bun:"production_company,notnull" json:"productionCompany,omitempty"`
	Sinopsis          string       `bun:"sinopsis,notnull" json:"sinopsis,omitempty"`
	SinopsisEng       string       `bun:"sinopsis_eng,notnull" json:"sinopsisEng,omitempty"`
	Country           string       `bun:"country,notnull" json:"country,omitempty"`
	Coproducers       []string     `bun:"coproducers,type:jsonb,nullzero" json:"coproducers,omitempty"`
	Year              string       `bun:"year,notnull" json:"year,omitempty"`
	RunTime           string       `bun:"run_time,notnull" json:"runTime,omitempty"`
	Genre             string       `bun:"genre,notnull" json:"genre,omitempty"`
	DirectorPhoto     Attachment   `bun:"director_photo,type:jsonb,nullzero" json:"directorPhoto"`
	ProducerPhoto     Attachment   `bun:"producer_photo,type:jsonb,nullzero" json:"producerPhoto"`
	Poster            Attachment   `bun:"poster,type:jsonb,nullzero" json:"afiche"`
	Dossier           Attachment   `bun:"dossier,type:jsonb,nullzero" json:"dossier"`
	Stills            []Attachment `bun:"stills,type:jsonb,nullzero" json:"stills,omitempty"`
	UserID            uuid.UUID    `bun:"user_id,notnull,type:uuid" json:"userId,omitempty"`
	CreatedAt         *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
