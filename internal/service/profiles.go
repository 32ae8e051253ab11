package service

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/repository"
)

// Profiles manages the single public profile a user may attach to their
// account.
type Profiles struct {
	repo repository.Manager
}

// NewProfiles wires the profiles service.
func NewProfiles(manager repository.Manager) *Profiles {
	return &Profiles{repo: manager}
}

// Create stores the caller's profile and links it back to the credential
// record. A second profile for the same user is rejected.
func (s *Profiles) Create(ctx context.Context, userID uuid.UUID, profile *model.UserProfile) (*model.UserProfile, error) {
	user, err := s.repo.Users().FindByID(ctx, userID.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	if _, err := s.repo.Profiles().GetByUser(ctx, userID); err == nil {
		return nil, auth.ErrInvalidData
	} else if !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check existing profile")
	}

	profile.UserID = userID

	created, err := s.repo.Profiles().Create(ctx, profile)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create profile")
	}

	user.ProfileID = &created.ID
	if _, err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to link profile to user")
	}

	return created, nil
}

// GetForUser returns the caller's profile.
func (s *Profiles) GetForUser(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.repo.Profiles().GetByUser(ctx, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load profile")
	}
	return profile, nil
}
