package repository

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ecfilm/catalog-api/internal/model"
)

// Companies stores the audiovisual-services companies of the catalog.
type Companies interface {
	repository.Repository[*model.Company]

	Create(ctx context.Context, record *model.Company, criteria ...repository.InsertCriteria) (*model.Company, error)
	Update(ctx context.Context, record *model.Company, criteria ...repository.UpdateCriteria) (*model.Company, error)
	GetByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context) ([]*model.Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Company, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type companies struct {
	repository.Repository[*model.Company]
	db *bun.DB
}

var _ Companies = (*companies)(nil)

func NewCompaniesRepository(db *bun.DB) Companies {
	repo := repository.NewRepository[*model.Company](db, repository.ModelHandlers[*model.Company]{
		NewRecord: func() *model.Company { return &model.Company{} },
		GetID: func(c *model.Company) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *model.Company, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string { return "company" },
	})

	return &companies{Repository: repo, db: db}
}

func (r *companies) Create(ctx context.Context, record *model.Company, criteria ...repository.InsertCriteria) (*model.Company, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *companies) Update(ctx context.Context, record *model.Company, criteria ...repository.UpdateCriteria) (*model.Company, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *companies) GetByName(ctx context.Context, name string) (*model.Company, error) {
	record := &model.Company{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.company = ?", strings.TrimSpace(name)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"company": name})
		}
		return nil, err
	}

	return record, nil
}

func (r *companies) List(ctx context.Context) ([]*model.Company, error) {
	records := []*model.Company{}
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *companies) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Company, error) {
	records := []*model.Company{}
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *companies) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*model.Company)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	return err
}
