package repository

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ecfilm/catalog-api/internal/model"
)

// Projects stores the audiovisual projects of the catalog.
type Projects interface {
	repository.Repository[*model.AudiovisualProject]

	Create(ctx context.Context, record *model.AudiovisualProject, criteria ...repository.InsertCriteria) (*model.AudiovisualProject, error)
	Update(ctx context.Context, record *model.AudiovisualProject, criteria ...repository.UpdateCriteria) (*model.AudiovisualProject, error)
	GetByName(ctx context.Context, name string) (*model.AudiovisualProject, error)
	List(ctx context.Context) ([]*model.AudiovisualProject, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type projects struct {
	repository.Repository[*model.AudiovisualProject]
	db *bun.DB
}

var _ Projects = (*projects)(nil)

func NewProjectsRepository(db *bun.DB) Projects {
	repo := repository.NewRepository[*model.AudiovisualProject](db, repository.ModelHandlers[*model.AudiovisualProject]{
		NewRecord: func() *model.AudiovisualProject { return &model.AudiovisualProject{} },
		GetID: func(p *model.AudiovisualProject) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *model.AudiovisualProject, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string { return "name" },
	})

	return &projects{Repository: repo, db: db}
}

func (r *projects) Create(ctx context.Context, record *model.AudiovisualProject, criteria ...repository.InsertCriteria) (*model.AudiovisualProject, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *projects) Update(ctx context.Context, record *model.AudiovisualProject, criteria ...repository.UpdateCriteria) (*model.AudiovisualProject, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *projects) GetByName(ctx context.Context, name string) (*model.AudiovisualProject, error) {
	record := &model.AudiovisualProject{}
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

func (r *projects) List(ctx context.Context) ([]*model.AudiovisualProject, error) {
	records := []*model.AudiovisualProject{}
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *projects) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*model.AudiovisualProject)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	return err
}
