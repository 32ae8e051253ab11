package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ecfilm/catalog-api/internal/model"
)

// Profiles stores user profiles, one per user at most.
type Profiles interface {
	repository.Repository[*model.UserProfile]

	Create(ctx context.Context, record *model.UserProfile, criteria ...repository.InsertCriteria) (*model.UserProfile, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
}

type profiles struct {
	repository.Repository[*model.UserProfile]
	db *bun.DB
}

var _ Profiles = (*profiles)(nil)

func NewProfilesRepository(db *bun.DB) Profiles {
	repo := repository.NewRepository[*model.UserProfile](db, repository.ModelHandlers[*model.UserProfile]{
		NewRecord: func() *model.UserProfile { return &model.UserProfile{} },
		GetID: func(p *model.UserProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *model.UserProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string { return "user_id" },
	})

	return &profiles{Repository: repo, db: db}
}

func (r *profiles) Create(ctx context.Context, record *model.UserProfile, criteria ...repository.InsertCriteria) (*model.UserProfile, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *profiles) GetByUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	record := &model.UserProfile{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"user_id": userID.String()})
		}
		return nil, err
	}

	return record, nil
}
