package repository

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/ecfilm/catalog-api/internal/model"
)

var resetUserPasswordSQL = `UPDATE "users"
SET
	"validation" = TRUE,
	"password_hash" = ?
WHERE
	"id" = ?;`

// Users is the credential store. Lookups by username and email back the
// login and registration flows; FindByID backs the authorization gate's
// role re-fetch.
type Users interface {
	repository.Repository[*model.User]

	Create(ctx context.Context, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error)
	Update(ctx context.Context, record *model.User, criteria ...repository.UpdateCriteria) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	MarkValidated(ctx context.Context, id uuid.UUID) (*model.User, error)
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context) ([]*model.User, error)
}

type users struct {
	repository.Repository[*model.User]
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the users repository on top of the generic
// bun-backed repository.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*model.User](db, repository.ModelHandlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
		GetID: func(u *model.User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *model.User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string { return "email" },
	})

	return &users{Repository: repo, db: db}
}

func (a *users) Create(ctx context.Context, record *model.User, criteria ...repository.InsertCriteria) (*model.User, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return a.Repository.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) Update(ctx context.Context, record *model.User, criteria ...repository.UpdateCriteria) (*model.User, error) {
	criteria = append(criteria, repository.UpdateByID(record.ID.String()))
	return a.Repository.UpdateTx(ctx, a.db, record, criteria...)
}

func (a *users) FindByID(ctx context.Context, id string) (*model.User, error) {
	return a.Repository.GetByID(ctx, id)
}

func (a *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return a.getByColumn(ctx, "username", strings.TrimSpace(username))
}

func (a *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return a.getByColumn(ctx, "email", strings.TrimSpace(email))
}

func (a *users) getByColumn(ctx context.Context, column, value string) (*model.User, error) {
	record := &model.User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{column: value})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) MarkValidated(ctx context.Context, id uuid.UUID) (*model.User, error) {
	_, err := a.db.NewUpdate().
		Model((*model.User)(nil)).
		Set("validation = TRUE").
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	return a.FindByID(ctx, id.String())
}

func (a *users) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := a.db.NewRaw(resetUserPasswordSQL, passwordHash, id.String()).Exec(ctx)
	return err
}

func (a *users) List(ctx context.Context) ([]*model.User, error) {
	records := []*model.User{}
	err := a.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}
