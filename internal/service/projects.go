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

// Projects manages the audiovisual-project records of the catalog.
type Projects struct {
	repo   repository.Manager
	store  storage.ObjectStore
	logger auth.Logger
}

// NewProjects wires the projects service.
func NewProjects(manager repository.Manager, store storage.ObjectStore, logger auth.Logger) *Projects {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Projects{repo: manager, store: store, logger: logger}
}

// Create stores a new project owned by the caller. The owner must exist and
// the project name must be unused.
func (s *Projects) Create(ctx context.Context, ownerID uuid.UUID, record *model.AudiovisualProject) (*model.AudiovisualProject, error) {
	if err := ensureOwner(ctx, s.repo, ownerID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Projects().GetByName(ctx, record.Name); err == nil {
		return nil, auth.ErrInvalidData
	} else if !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check project name")
	}

	record.UserID = ownerID

	created, err := s.repo.Projects().Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create project")
	}

	return created, nil
}

// Get returns one project by ID.
func (s *Projects) Get(ctx context.Context, id uuid.UUID) (*model.AudiovisualProject, error) {
	record, err := s.repo.Projects().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load project")
	}
	return record, nil
}

// List returns every project.
func (s *Projects) List(ctx context.Context) ([]*model.AudiovisualProject, error) {
	return s.repo.Projects().List(ctx)
}

// Update persists a patched record.
func (s *Projects) Update(ctx context.Context, record *model.AudiovisualProject) (*model.AudiovisualProject, error) {
	updated, err := s.repo.Projects().Update(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update project")
	}
	return updated, nil
}

// Delete removes the project along with every stored file: the four
// single-slot documents and the stills gallery.
func (s *Projects) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	slots := []model.Attachment{
		record.DirectorPhoto, record.ProducerPhoto, record.Poster, record.Dossier,
	}
	for _, slot := range slots {
		if slot.Empty() {
			continue
		}
		if err := s.store.Delete(ctx, slot.Key); err != nil {
			s.logger.Warn("failed to delete project file %s: %v", slot.Key, err)
		}
	}
	for _, still := range record.Stills {
		if err := s.store.Delete(ctx, still.Key); err != nil {
			s.logger.Warn("failed to delete project still %s: %v", still.Key, err)
		}
	}

	if err := s.repo.Projects().DeleteByID(ctx, record.ID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete project")
	}

	return nil
}
