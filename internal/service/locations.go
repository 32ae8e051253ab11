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

// Locations manages the filming-location records of the catalog.
type Locations struct {
	repo   repository.Manager
	store  storage.ObjectStore
	logger auth.Logger
}

// NewLocations wires the locations service.
func NewLocations(manager repository.Manager, store storage.ObjectStore, logger auth.Logger) *Locations {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Locations{repo: manager, store: store, logger: logger}
}

// Create stores a new location owned by the caller. The owner must exist and
// the location name must be unused.
func (s *Locations) Create(ctx context.Context, ownerID uuid.UUID, record *model.Location) (*model.Location, error) {
	if err := ensureOwner(ctx, s.repo, ownerID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Locations().GetByName(ctx, record.Name); err == nil {
		return nil, auth.ErrInvalidData
	} else if !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check location name")
	}

	record.UserID = ownerID

	created, err := s.repo.Locations().Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create location")
	}

	return created, nil
}

// Get returns one location by ID.
func (s *Locations) Get(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	record, err := s.repo.Locations().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load location")
	}
	return record, nil
}

// List returns every location.
func (s *Locations) List(ctx context.Context) ([]*model.Location, error) {
	return s.repo.Locations().List(ctx)
}

// Update persists a patched record. Callers load the record via Get, apply
// the incoming fields on top, then hand it back here.
func (s *Locations) Update(ctx context.Context, record *model.Location) (*model.Location, error) {
	updated, err := s.repo.Locations().Update(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update location")
	}
	return updated, nil
}

// Delete removes the location and its stored photos. Object-store failures
// are logged and skipped so a half-deleted gallery never strands the record.
func (s *Locations) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, photo := range record.Photos {
		if err := s.store.Delete(ctx, photo.Key); err != nil {
			s.logger.Warn("failed to delete location photo %s: %v", photo.Key, err)
		}
	}

	if err := s.repo.Locations().DeleteByID(ctx, record.ID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete location")
	}

	return nil
}

func ensureOwner(ctx context.Context, manager repository.Manager, ownerID uuid.UUID) error {
	if _, err := manager.Users().FindByID(ctx, ownerID.String()); err != nil {
		if repository.IsRecordNotFound(err) {
			return auth.ErrNotExist
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load owner")
	}
	return nil
}
