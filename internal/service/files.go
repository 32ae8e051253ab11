package service

import (
	"context"
	"io"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/repository"
	"github.com/ecfilm/catalog-api/internal/storage"
)

// Company file slots and galleries addressable through the files service.
const (
	CompanyFieldLogo   = "logo"
	CompanyFieldPhotos = "photos"
)

// Project file slots and galleries addressable through the files service.
const (
	ProjectFieldDirectorPhoto = "directorPhoto"
	ProjectFieldProducerPhoto = "producerPhoto"
	ProjectFieldPoster        = "afiche"
	ProjectFieldDossier       = "dossier"
	ProjectFieldStills        = "stills"
)

// Upload is one incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Files moves catalog files between the object store and the records that
// reference them. Single-slot fields replace their previous object; galleries
// append up to a per-record cap.
type Files struct {
	repo   repository.Manager
	store  storage.ObjectStore
	logger auth.Logger
}

// NewFiles wires the files service.
func NewFiles(manager repository.Manager, store storage.ObjectStore, logger auth.Logger) *Files {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Files{repo: manager, store: store, logger: logger}
}

// AddLocationPhoto appends a photo to a location's gallery.
func (s *Files) AddLocationPhoto(ctx context.Context, id uuid.UUID, up Upload) (*model.Location, error) {
	record, err := s.repo.Locations().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load location")
	}

	if len(record.Photos) >= model.MaxLocationPhotos {
		return nil, auth.ErrInvalidData
	}

	attachment, err := s.putObject(ctx, record.Name, "photos", up)
	if err != nil {
		return nil, err
	}

	record.Photos = append(record.Photos, attachment)
	return s.repo.Locations().Update(ctx, record)
}

// RemoveLocationPhoto deletes a photo from the store and drops it from the
// location's gallery.
func (s *Files) RemoveLocationPhoto(ctx context.Context, id uuid.UUID, photoID string) (*model.Location, error) {
	record, err := s.repo.Locations().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load location")
	}

	photos, removed := dropAttachment(record.Photos, photoID)
	if removed.Empty() {
		return nil, auth.ErrNotExist
	}

	s.deleteObject(ctx, removed)

	record.Photos = photos
	return s.repo.Locations().Update(ctx, record)
}

// SetCompanyFile stores a company file: the logo slot replaces its previous
// object, the photo gallery appends up to its cap.
func (s *Files) SetCompanyFile(ctx context.Context, id uuid.UUID, field string, up Upload) (*model.Company, error) {
	record, err := s.repo.Companies().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load company")
	}

	switch field {
	case CompanyFieldLogo:
		attachment, err := s.replaceObject(ctx, record.Company, field, record.Logo, up)
		if err != nil {
			return nil, err
		}
		record.Logo = attachment
	case CompanyFieldPhotos:
		if len(record.Photos) >= model.MaxCompanyPhotos {
			return nil, auth.ErrInvalidData
		}
		attachment, err := s.putObject(ctx, record.Company, field, up)
		if err != nil {
			return nil, err
		}
		record.Photos = append(record.Photos, attachment)
	default:
		return nil, auth.ErrInvalidData
	}

	return s.repo.Companies().Update(ctx, record)
}

// RemoveCompanyFile deletes a company file: the logo slot is cleared, a
// gallery photo is dropped by ID.
func (s *Files) RemoveCompanyFile(ctx context.Context, id uuid.UUID, field, fileID string) (*model.Company, error) {
	record, err := s.repo.Companies().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load company")
	}

	switch field {
	case CompanyFieldLogo:
		if record.Logo.Empty() {
			return nil, auth.ErrNotExist
		}
		s.deleteObject(ctx, record.Logo)
		record.Logo = model.Attachment{}
	case CompanyFieldPhotos:
		photos, removed := dropAttachment(record.Photos, fileID)
		if removed.Empty() {
			return nil, auth.ErrNotExist
		}
		s.deleteObject(ctx, removed)
		record.Photos = photos
	default:
		return nil, auth.ErrInvalidData
	}

	return s.repo.Companies().Update(ctx, record)
}

// SetProjectFile stores a project file: directorPhoto, producerPhoto, afiche
// and dossier replace their previous object, stills append up to the cap.
func (s *Files) SetProjectFile(ctx context.Context, id uuid.UUID, field string, up Upload) (*model.AudiovisualProject, error) {
	record, err := s.repo.Projects().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load project")
	}

	if field == ProjectFieldStills {
		if len(record.Stills) >= model.MaxProjectStills {
			return nil, auth.ErrInvalidData
		}
		attachment, err := s.putObject(ctx, record.Name, field, up)
		if err != nil {
			return nil, err
		}
		record.Stills = append(record.Stills, attachment)
		return s.repo.Projects().Update(ctx, record)
	}

	slot := projectSlot(record, field)
	if slot == nil {
		return nil, auth.ErrInvalidData
	}

	attachment, err := s.replaceObject(ctx, record.Name, field, *slot, up)
	if err != nil {
		return nil, err
	}
	*slot = attachment

	return s.repo.Projects().Update(ctx, record)
}

// RemoveProjectFile deletes a project file: single slots are cleared, a
// still is dropped by ID.
func (s *Files) RemoveProjectFile(ctx context.Context, id uuid.UUID, field, fileID string) (*model.AudiovisualProject, error) {
	record, err := s.repo.Projects().GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load project")
	}

	if field == ProjectFieldStills {
		stills, removed := dropAttachment(record.Stills, fileID)
		if removed.Empty() {
			return nil, auth.ErrNotExist
		}
		s.deleteObject(ctx, removed)
		record.Stills = stills
		return s.repo.Projects().Update(ctx, record)
	}

	slot := projectSlot(record, field)
	if slot == nil {
		return nil, auth.ErrInvalidData
	}
	if slot.Empty() {
		return nil, auth.ErrNotExist
	}

	s.deleteObject(ctx, *slot)
	*slot = model.Attachment{}

	return s.repo.Projects().Update(ctx, record)
}

func (s *Files) putObject(ctx context.Context, folder, field string, up Upload) (model.Attachment, error) {
	key := s.store.BuildKey(folder, field, up.Filename)

	url, err := s.store.Upload(ctx, key, up.ContentType, up.Content, up.Size)
	if err != nil {
		return model.Attachment{}, errors.Wrap(err, errors.CategoryOperation, "failed to upload file")
	}

	return model.NewAttachment(url, key), nil
}

// replaceObject removes the slot's previous object before storing the new
// one. A failed delete only logs; the stale object is orphaned, not fatal.
func (s *Files) replaceObject(ctx context.Context, folder, field string, old model.Attachment, up Upload) (model.Attachment, error) {
	if !old.Empty() {
		s.deleteObject(ctx, old)
	}
	return s.putObject(ctx, folder, field, up)
}

func (s *Files) deleteObject(ctx context.Context, attachment model.Attachment) {
	if attachment.Key == "" {
		return
	}
	if err := s.store.Delete(ctx, attachment.Key); err != nil {
		s.logger.Warn("failed to delete object %s: %v", attachment.Key, err)
	}
}

func dropAttachment(list []model.Attachment, id string) ([]model.Attachment, model.Attachment) {
	for i, a := range list {
		if a.ID == id {
			return append(list[:i:i], list[i+1:]...), a
		}
	}
	return list, model.Attachment{}
}

func projectSlot(record *model.AudiovisualProject, field string) *model.Attachment {
	switch field {
	case ProjectFieldDirectorPhoto:
		return &record.DirectorPhoto
	case ProjectFieldProducerPhoto:
		return &record.ProducerPhoto
	case ProjectFieldPoster:
		return &record.Poster
	case ProjectFieldDossier:
		return &record.Dossier
	default:
		return nil
	}
}
