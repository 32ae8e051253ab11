package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/service"
)

// ProfilesController handles the caller's public profile.
type ProfilesController struct {
	profiles *service.Profiles
}

// NewProfilesController builds the profiles controller.
func NewProfilesController(profiles *service.Profiles) *ProfilesController {
	return &ProfilesController{profiles: profiles}
}

// Register registers the routes under /api/profile.
func (ctl *ProfilesController) Register(api fiber.Router, requireAuth fiber.Handler) {
	group := api.Group("/profile", requireAuth)

	group.Post("/", ctl.Create)
	group.Get("/", ctl.Get)
}

// Create stores the caller's profile.
func (ctl *ProfilesController) Create(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	profile := &model.UserProfile{}
	if err := c.BodyParser(profile); err != nil {
		return auth.ErrInvalidData
	}

	if err := validateProfile(profile); err != nil {
		return err
	}

	created, err := ctl.profiles.Create(c.UserContext(), userID, profile)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, created)
}

// Get returns the caller's profile.
func (ctl *ProfilesController) Get(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	profile, err := ctl.profiles.GetForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, profile)
}
