package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/ecfilm/catalog-api/internal/mailer"
	"github.com/ecfilm/catalog-api/internal/repository"
)

var testSchema = []string{
	`CREATE TABLE users (
	id TEXT NOT NULL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	user_role TEXT NOT NULL,
	validation BOOLEAN NOT NULL DEFAULT FALSE,
	profile_id TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`,
	`CREATE TABLE user_profiles (
	id TEXT NOT NULL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	profession TEXT,
	phone TEXT,
	city TEXT,
	country TEXT,
	bio TEXT,
	user_id TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`,
	`CREATE TABLE locations (
	id TEXT NOT NULL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	province TEXT NOT NULL,
	city TEXT NOT NULL,
	weather TEXT NOT NULL,
	accessibility TEXT NOT NULL,
	direction TEXT NOT NULL,
	"map" TEXT NOT NULL,
	contact TEXT NOT NULL,
	photos TEXT,
	user_id TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`,
	`CREATE TABLE companies (
	id TEXT NOT NULL PRIMARY KEY,
	company TEXT NOT NULL UNIQUE,
	first_activity TEXT NOT NULL,
	second_activity TEXT,
	province TEXT NOT NULL,
	city TEXT NOT NULL,
	direction TEXT NOT NULL,
	description TEXT NOT NULL,
	description_eng TEXT NOT NULL,
	clients TEXT,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	website TEXT NOT NULL,
	url_video TEXT NOT NULL,
	type_video TEXT NOT NULL,
	logo TEXT,
	photos TEXT,
	user_id TEXT NOT NULL,
	public BOOLEAN NOT NULL DEFAULT TRUE,
	active_whatsapp BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`,
	`CREATE TABLE audiovisual_projects (
	id TEXT NOT NULL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	director TEXT NOT NULL,
	producer TEXT NOT NULL,
	production_company TEXT NOT NULL,
	sinopsis TEXT NOT NULL,
	sinopsis_eng TEXT NOT NULL,
	country TEXT NOT NULL,
	coproducers TEXT,
	year TEXT NOT NULL,
	run_time TEXT NOT NULL,
	genre TEXT NOT NULL,
	director_photo TEXT,
	producer_photo TEXT,
	poster TEXT,
	dossier TEXT,
	stills TEXT,
	user_id TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);`,
}

func setupManager(t *testing.T) repository.Manager {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())
	for _, ddl := range testSchema {
		_, err = bunDB.Exec(ddl)
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	return repository.NewManager(bunDB)
}

// stubDispatcher captures outbound mail. SendAsync delivers inline so tests
// never race a goroutine.
type stubDispatcher struct {
	mu     sync.Mutex
	emails []mailer.Email
}

func (d *stubDispatcher) Send(_ context.Context, email mailer.Email) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emails = append(d.emails, email)
	return nil
}

func (d *stubDispatcher) SendAsync(email mailer.Email) {
	_ = d.Send(context.Background(), email)
}

func (d *stubDispatcher) sent() []mailer.Email {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]mailer.Email, len(d.emails))
	copy(out, d.emails)
	return out
}

// fakeStore is an in-memory ObjectStore with deterministic keys.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) BuildKey(folder, field, filename string) string {
	return fmt.Sprintf("%s/%s_%s", folder, field, filename)
}

func (f *fakeStore) Upload(_ context.Context, key, contentType string, reader io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = contentType
	return "https://cdn.test/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}
