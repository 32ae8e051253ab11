package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/config"
	"github.com/ecfilm/catalog-api/internal/logging"
	"github.com/ecfilm/catalog-api/internal/mailer"
	"github.com/ecfilm/catalog-api/internal/repository"
	"github.com/ecfilm/catalog-api/internal/server"
	"github.com/ecfilm/catalog-api/internal/service"
	"github.com/ecfilm/catalog-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, "server")

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := repository.NewManager(db)
	repos.MustValidate()

	tokens, err := auth.NewTokenService(
		cfg.Auth.SessionSecret,
		cfg.Auth.MailSecret,
		cfg.Auth.SessionTTL,
		cfg.Auth.ActionTTL,
		cfg.Auth.Issuer,
		logger.WithComponent("auth"),
	)
	if err != nil {
		log.Fatalf("failed to build token service: %v", err)
	}

	store, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("failed to connect to object store: %v", err)
	}

	dispatcher, err := mailer.NewSMTPDispatcher(cfg.SMTP, logger.WithComponent("mailer"))
	if err != nil {
		log.Fatalf("failed to build mail dispatcher: %v", err)
	}

	files := service.NewFiles(repos, store, logger.WithComponent("files"))

	srv := server.New(server.Deps{
		Config:    cfg,
		Logger:    logger.WithComponent("http"),
		Tokens:    tokens,
		Identity:  repos.Users(),
		Users:     service.NewUsers(repos, tokens, dispatcher, cfg.FrontURL, cfg.Auth.BcryptCost, logger.WithComponent("users")),
		Profiles:  service.NewProfiles(repos),
		Locations: service.NewLocations(repos, store, logger.WithComponent("locations")),
		Companies: service.NewCompanies(repos, store, logger.WithComponent("companies")),
		Projects:  service.NewProjects(repos, store, logger.WithComponent("projects")),
		Files:     files,
	})

	go func() {
		if err := srv.Listen(); err != nil {
			logger.Error("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed: %v", err)
	}
}
