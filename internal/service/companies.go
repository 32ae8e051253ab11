package service

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/repository"
	"github.com/ecfilm/catalog-api/internal/storage"
)

// Companies manages the audiovisual-services companies of the catalog.
type Companies struct {
	repo   repository.Manager
	store  storage.ObjectStore
	logger auth.Logger
}

// NewCompanies wires the companies service.
func NewCompanies(manager repository.Manager, store storage.ObjectStore, logger auth.Logger) *Companies {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Companies{repo: manager, store: store, logger: logger}
}

// Create stores a new company owned by the caller. The owner must exist and
// the company name must be unused.
func (s *Companies) Create(ctx context.Context, ownerID uuid.UUID, record *model.Company) (*model.Company, error) {
	if err := ensureOwner(ctx, s.repo, ownerID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Companies().GetByName(ctx, record.Company); err == nil {
		return nil, auth.ErrInvalidData
	} else if !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check company name")
	}

	record.UserID = ownerID

	created, err := s.repo.Companies().Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create company")
	}

	return created, nil
}

// Get returns one company by ID.
func (s *Companies) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	record, err := s.repo.Companies().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load company")
	}
	return record, nil
}

// List returns every company.
func (s *Companies) List(ctx context.Context) ([]*model.Company, error) {
	return s.repo.Companies().List(ctx)
}

// ListForUser returns the companies owned by one user.
func (s *Companies) ListForUser(ctx context.Context, ownerID uuid.UUID) ([]*model.Company, error) {
	return s.repo.Companies().ListByUser(ctx, ownerID)
}

// Update persists a patched record.
func (s *Companies) Update(ctx context.Context, record *model.Company) (*model.Company, error) {
	updated, err := s.repo.Companies().Update(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update company")
	}
	return updated, nil
}

// Delete removes the company along with its logo and photos.
func (s *Companies) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !record.Logo.Empty() {
		if err := s.store.Delete(ctx, record.Logo.Key); err != nil {
			s.logger.Warn("failed to delete company logo %s: %v", record.Logo.Key, err)
		}
	}
	for _, photo := range record.Photos {
		if err := s.store.Delete(ctx, photo.Key); err != nil {
			s.logger.Warn("failed to delete company photo %s: %v", photo.Key, err)
		}
	}

	if err := s.repo.Companies().DeleteByID(ctx, record.ID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete company")
	}

	return nil
}
