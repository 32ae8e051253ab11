package repository

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ecfilm/catalog-api/internal/model"
)

// Locations stores the filming locations of the catalog.
type Locations interface {
	repository.Repository[*model.Location]

	Create(ctx context.Context, record *model.Location, criteria ...repository.InsertCriteria) (*model.Location, error)
	Update(ctx context.Context, record *model.Location, criteria ...repository.UpdateCriteria) (*model.Location, error)
	GetByName(ctx context.Context, name string) (*model.Location, error)
	List(ctx context.Context) ([]*model.Location, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type locations struct {
	repository.Repository[*model.Location]
	db *bun.DB
}

var _ Locations = (*locations)(nil)

func NewLocationsRepository(db *bun.DB) Locations {
	repo := repository.NewRepository[*model.Location](db, repository.ModelHandlers[*model.Location]{
		NewRecord: func() *model.Location { return &model.Location{} },
		GetID: func(l *model.Location) uuid.UUID {
			if l == nil {
				return uuid.Nil
			}
			return l.ID
		},
		SetID: func(l *model.Location, id uuid.UUID) {
			if l != nil {
				l.ID = id
			}
		},
		GetIdentifier: func() string { return "name" },
	})

	return &locations{Repository: repo, db: db}
}

func (r *locations) Create(ctx context.Context, record *model.Location, criteria ...repository.InsertCriteria) (*model.Location, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *locations) Update(ctx context.Context, record *model.Location, criteria ...repository.UpdateCriteria) (*model.Location, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *locations) GetByName(ctx context.Context, name string) (*model.Location, error) {
	record := &model.Location{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", strings.TrimSpace(name)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"name": name})
		}
		return nil, err
	}

	return record, nil
}

func (r *locations) List(ctx context.Context) ([]*model.Location, error) {
	records := []*model.Location{}
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *locations) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*model.Location)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	return err
}
