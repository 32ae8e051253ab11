package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Manager exposes all repositories behind a single dependency.
type Manager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Profiles() Profiles
	Locations() Locations
	Companies() Companies
	Projects() Projects
}

type mngr struct {
	db        *bun.DB
	users     Users
	profiles  Profiles
	locations Locations
	companies Companies
	projects  Projects
}

// NewManager wires every repository over the shared bun handle.
func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:        db,
		users:     NewUsersRepository(db),
		profiles:  NewProfilesRepository(db),
		locations: NewLocationsRepository(db),
		companies: NewCompaniesRepository(db),
		projects:  NewProjectsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}
	if m.profiles == nil {
		return errors.New("repository profiles should be initialized")
	}
	if m.locations == nil {
		return errors.New("repository locations should be initialized")
	}
	if m.companies == nil {
		return errors.New("repository companies should be initialized")
	}
	if m.projects == nil {
		return errors.New("repository projects should be initialized")
	}
	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users         { return m.users }
func (m mngr) Profiles() Profiles   { return m.profiles }
func (m mngr) Locations() Locations { return m.locations }
func (m mngr) Companies() Companies { return m.companies }
func (m mngr) Projects() Projects   { return m.projects }
