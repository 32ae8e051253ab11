package service

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/mailer"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/repository"
)

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Username string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput is the payload accepted by Login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload is what a successful login returns to the client.
type LoginPayload struct {
	Username string `json:"name"`
	Token    string `json:"token"`
}

// Users implements registration, login, email verification and password
// recovery on top of the credential store.
type Users struct {
	repo       repository.Manager
	tokens     *auth.TokenService
	mail       mailer.Dispatcher
	frontURL   string
	bcryptCost int
	logger     auth.Logger
}

// NewUsers wires the users service.
func NewUsers(repo repository.Manager, tokens *auth.TokenService, mail mailer.Dispatcher, frontURL string, bcryptCost int, logger auth.Logger) *Users {
	if logger == nil {
		logger = auth.DefaultLogger()
	}
	return &Users{
		repo:       repo,
		tokens:     tokens,
		mail:       mail,
		frontURL:   frontURL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a credential record with a hashed password and
// validation=false, then fires the verification email. The email send is
// best-effort: a broken relay never fails the registration.
func (s *Users) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := s.ensureUnregistered(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !model.ValidRole(role) {
		return nil, auth.ErrInvalidData
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, auth.ErrInvalidData
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Validation:   false,
	}
	if id, err := hashid.NewUUID(input.Email); err == nil {
		user.ID = id
	}

	user, err = s.repo.Users().Create(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	s.sendVerification(user)

	return user, nil
}

// Login verifies credentials and mints a session token. The ordering is
// deliberate: password verification first, the validation flag only after a
// match, so an unverified account is indistinguishable from a wrong password
// until the caller actually owns the password.
func (s *Users) Login(ctx context.Context, input LoginInput) (*LoginPayload, error) {
	user, err := s.repo.Users().GetByEmail(ctx, input.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	if err := auth.ComparePasswordAndHash(input.Password, user.PasswordHash); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if !user.Validation {
		return nil, auth.ErrEmailUnverified
	}

	token, err := s.tokens.GenerateSession(user.ID.String(), user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginPayload{Username: user.Username, Token: token}, nil
}

// VerifyEmail consumes an email-verification token and flips the account's
// validation flag. Re-submitting a still-valid token re-runs the same effect
// idempotently.
func (s *Users) VerifyEmail(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := s.tokens.ValidateAction(rawToken, auth.PurposeVerifyEmail)
	if err != nil {
		return nil, auth.ErrNotExist
	}

	user, err := s.repo.Users().GetByEmail(ctx, claims.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	return s.repo.Users().MarkValidated(ctx, user.ID)
}

// MarkValidated flips the validation flag for the named user. Admin-driven
// counterpart of VerifyEmail.
func (s *Users) MarkValidated(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, auth.ErrNotExist
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	return s.repo.Users().MarkValidated(ctx, user.ID)
}

// RequestRecovery mints a recovery token and mails the reset link. The
// response is identical whether or not the account exists; enumeration via
// this endpoint reveals nothing.
func (s *Users) RequestRecovery(ctx context.Context, email string) error {
	user, err := s.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Info("recovery requested for unknown address %s", email)
			return nil
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	token, err := s.tokens.GenerateAction(auth.PurposeRecoverPassword, user.Username, user.Email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/users/recover/%s", s.frontURL, token)
	s.mail.SendAsync(mailer.RecoveryEmail(user.Username, user.Email, link))

	return nil
}

// FinalizeRecovery consumes a recovery token and rehashes the password.
// Completing the flow also proves ownership of the mailbox, so the
// validation flag is set as a side effect.
func (s *Users) FinalizeRecovery(ctx context.Context, rawToken, password string) error {
	claims, err := s.tokens.ValidateAction(rawToken, auth.PurposeRecoverPassword)
	if err != nil {
		return auth.ErrNotExist
	}

	user, err := s.repo.Users().GetByEmail(ctx, claims.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return auth.ErrNotExist
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return auth.ErrInvalidData
	}

	return s.repo.Users().ResetPassword(ctx, user.ID, hash)
}

// List returns every credential record.
func (s *Users) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.Users().List(ctx)
}

func (s *Users) ensureUnregistered(ctx context.Context, username, email string) error {
	if _, err := s.repo.Users().GetByUsername(ctx, username); err == nil {
		return auth.ErrUserExists
	} else if !repository.IsRecordNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check username")
	}

	if _, err := s.repo.Users().GetByEmail(ctx, email); err == nil {
		return auth.ErrUserExists
	} else if !repository.IsRecordNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check email")
	}

	return nil
}

func (s *Users) sendVerification(user *model.User) {
	token, err := s.tokens.GenerateAction(auth.PurposeVerifyEmail, user.Username, user.Email)
	if err != nil {
		s.logger.Error("failed to mint verification token: %v", err)
		return
	}

	link := fmt.Sprintf("%s/users/emailAuth/%s", s.frontURL, token)
	s.mail.SendAsync(mailer.VerificationEmail(user.Username, user.Email, link))
}
