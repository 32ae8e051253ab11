package server

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/config"
	"github.com/ecfilm/catalog-api/internal/service"
)

// Deps carries everything the HTTP layer needs; main builds it once.
type Deps struct {
	Config    *config.Config
	Logger    auth.Logger
	Tokens    *auth.TokenService
	Identity  auth.IdentityStore
	Users     *service.Users
	Profiles  *service.Profiles
	Locations *service.Locations
	Companies *service.Companies
	Projects  *service.Projects
	Files     *service.Files
}

// Server is the fiber application plus its config.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger auth.Logger
}

// New assembles the fiber app: global middleware, the error choke point and
// every route group.
func New(d Deps) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "catalog-api",
		ErrorHandler: NewErrorHandler(d.Logger),
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(d.Config.Origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger(d.Logger))

	requireAuth := auth.RequireAuth(d.Tokens)
	requireAdmin := auth.RequireAdmin(d.Identity)

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusOK, "Film Commission Catalog API")
	})

	NewUsersController(d.Users).Register(api, requireAuth, requireAdmin)
	NewProfilesController(d.Profiles).Register(api, requireAuth)
	NewLocationsController(d.Locations, d.Files).Register(api, requireAuth)
	NewCompaniesController(d.Companies, d.Files).Register(api, requireAuth)
	NewProjectsController(d.Projects, d.Files).Register(api, requireAuth)

	return &Server{app: app, cfg: d.Config, logger: d.Logger}
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or Shutdown runs.
func (s *Server) Listen() error {
	s.logger.Info("listening on port %s", s.cfg.Port)
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func requestLogger(logger auth.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		logger.Info("%s %s -> %d (%s)", c.Method(), c.Path(), status, time.Since(start))

		return err
	}
}
