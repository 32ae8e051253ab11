package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/service"
)

// UsersController handles registration, login and the mail-token flows.
type UsersController struct {
	users *service.Users
}

// NewUsersController builds the users controller.
func NewUsersController(users *service.Users) *UsersController {
	return &UsersController{users: users}
}

// Register registers the routes under /api/users.
func (ctl *UsersController) Register(api fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	group := api.Group("/users")

	group.Post("/", ctl.Create)
	group.Post("/login", ctl.Login)
	group.Get("/login", requireAuth, ctl.Session)
	group.Get("/auth/:code", ctl.VerifyEmail)
	group.Post("/auth", ctl.Validate)
	group.Post("/recover", ctl.Recover)
	group.Post("/recover/:code", ctl.FinalizeRecovery)
	group.Get("/", requireAuth, requireAdmin, ctl.List)
}

// Create registers a new account.
func (ctl *UsersController) Create(c *fiber.Ctx) error {
	input := service.RegisterInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	if err := validateRegister(input); err != nil {
		return err
	}

	user, err := ctl.users.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, user)
}

// Login exchanges credentials for a session token.
func (ctl *UsersController) Login(c *fiber.Ctx) error {
	input := service.LoginInput{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidCredentials
	}

	if err := validateLogin(input); err != nil {
		return err
	}

	payload, err := ctl.users.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, payload)
}

// Session echoes the caller's session claims; the front end uses it to keep
// a login alive across reloads.
func (ctl *UsersController) Session(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c)
	if !ok {
		return auth.ErrNoCredentials
	}

	return respond(c, fiber.StatusAccepted, fiber.Map{
		"id":   claims.UserID(),
		"name": claims.Username,
	})
}

// VerifyEmail consumes the emailed verification link.
func (ctl *UsersController) VerifyEmail(c *fiber.Ctx) error {
	user, err := ctl.users.VerifyEmail(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, user)
}

// Validate flips an account's validation flag by username.
func (ctl *UsersController) Validate(c *fiber.Ctx) error {
	input := struct {
		Username string `json:"name"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	user, err := ctl.users.MarkValidated(c.UserContext(), input.Username)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, user)
}

// Recover starts a password recovery. The response never reveals whether
// the address has an account.
func (ctl *UsersController) Recover(c *fiber.Ctx) error {
	input := struct {
		Email string `json:"email"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	if err := ctl.users.RequestRecovery(c.UserContext(), input.Email); err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, true)
}

// FinalizeRecovery consumes the emailed recovery link and sets the new
// password.
func (ctl *UsersController) FinalizeRecovery(c *fiber.Ctx) error {
	input := struct {
		Password string `json:"password"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	if err := ctl.users.FinalizeRecovery(c.UserContext(), c.Params("code"), input.Password); err != nil {
		return err
	}

	return respond(c, fiber.StatusAccepted, true)
}

// List returns every account. Admin only.
func (ctl *UsersController) List(c *fiber.Ctx) error {
	users, err := ctl.users.List(c.UserContext())
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, users)
}
