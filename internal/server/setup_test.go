package server_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/config"
	"github.com/ecfilm/catalog-api/internal/mailer"
	"github.com/ecfilm/catalog-api/internal/repository"
	"github.com/ecfilm/catalog-api/internal/server"
	"github.com/ecfilm/catalog-api/internal/service"
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

type capturingMailer struct {
	mu     sync.Mutex
	emails []mailer.Email
}

func (d *capturingMailer) Send(_ context.Context, email mailer.Email) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emails = append(d.emails, email)
	return nil
}

func (d *capturingMailer) SendAsync(email mailer.Email) {
	_ = d.Send(context.Background(), email)
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

func (f *memoryStore) BuildKey(folder, field, filename string) string {
	return fmt.Sprintf("%s/%s_%s", folder, field, filename)
}

func (f *memoryStore) Upload(_ context.Context, key, _ string, reader io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = map[string]bool{}
	}
	f.objects[key] = true
	return "https://cdn.test/" + key, nil
}

func (f *memoryStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	srv    *server.Server
	repo   repository.Manager
	tokens *auth.TokenService
	mail   *capturingMailer
	store  *memoryStore
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())
	for _, ddl := range testSchema {
		_, err = bunDB.Exec(ddl)
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = bunDB.Close() })

	cfg := &config.Config{
		Port:     "0",
		FrontURL: "https://catalogo.test",
		Origins:  []string{"https://catalogo.test"},
	}

	tokens, err := auth.NewTokenService("session-secret", "mail-secret", time.Hour, time.Hour, "catalog-test", nil)
	require.NoError(t, err)

	repo := repository.NewManager(bunDB)
	mail := &capturingMailer{}
	store := &memoryStore{}

	srv := server.New(server.Deps{
		Config:    cfg,
		Logger:    auth.DefaultLogger(),
		Tokens:    tokens,
		Identity:  repo.Users(),
		Users:     service.NewUsers(repo, tokens, mail, cfg.FrontURL, 4, nil),
		Profiles:  service.NewProfiles(repo),
		Locations: service.NewLocations(repo, store, nil),
		Companies: service.NewCompanies(repo, store, nil),
		Projects:  service.NewProjects(repo, store, nil),
		Files:     service.NewFiles(repo, store, nil),
	})

	return &testEnv{srv: srv, repo: repo, tokens: tokens, mail: mail, store: store}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	res, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)

	body := map[string]any{}
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	res.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}

	return res, body
}
