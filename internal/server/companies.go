package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/service"
)

// CompaniesController handles the company routes.
type CompaniesController struct {
	companies *service.Companies
	files     *service.Files
}

// NewCompaniesController builds the companies controller.
func NewCompaniesController(companies *service.Companies, files *service.Files) *CompaniesController {
	return &CompaniesController{companies: companies, files: files}
}

// Register registers the routes under /api/companies. Reads are public,
// writes require a session; /user lists the caller's own companies.
func (ctl *CompaniesController) Register(api fiber.Router, requireAuth fiber.Handler) {
	group := api.Group("/companies")

	group.Get("/", ctl.List)
	group.Get("/user", requireAuth, ctl.ListOwn)
	group.Post("/", requireAuth, ctl.Create)
	group.Put("/edit", requireAuth, ctl.Edit)
	group.Put("/files", requireAuth, ctl.UploadFile)
	group.Put("/files/delete", requireAuth, ctl.DeleteFile)
	group.Get("/:id", ctl.Get)
	group.Delete("/:id", requireAuth, ctl.Delete)
}

// List returns every company.
func (ctl *CompaniesController) List(c *fiber.Ctx) error {
	records, err := ctl.companies.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, records)
}

// ListOwn returns the caller's companies.
func (ctl *CompaniesController) ListOwn(c *fiber.Ctx) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	records, err := ctl.companies.ListForUser(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, records)
}

// Get returns one company.
func (ctl *CompaniesController) Get(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	record, err := ctl.companies.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, record)
}

// Create stores a new company owned by the caller.
func (ctl *CompaniesController) Create(c *fiber.Ctx) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	record := &model.Company{Public: true}
	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}

	if err := validateCompany(record); err != nil {
		return err
	}

	created, err := ctl.companies.Create(c.UserContext(), ownerID, record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, created)
}

// Edit patches a company.
func (ctl *CompaniesController) Edit(c *fiber.Ctx) error {
	ref := struct {
		ID string `json:"id"`
	}{}
	if err := c.BodyParser(&ref); err != nil {
		return auth.ErrInvalidData
	}

	id, err := recordID(ref.ID)
	if err != nil {
		return err
	}

	record, err := ctl.companies.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}
	record.ID = id

	if err := validateCompany(record); err != nil {
		return err
	}

	updated, err := ctl.companies.Update(c.UserContext(), record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, updated)
}

// UploadFile stores a company file. Multipart form with an "id" value and
// the file under "logo" or "photos".
func (ctl *CompaniesController) UploadFile(c *fiber.Ctx) error {
	id, err := recordID(c.FormValue("id"))
	if err != nil {
		return err
	}

	field, up, closeFile, err := formUpload(c, service.CompanyFieldLogo, service.CompanyFieldPhotos)
	if err != nil {
		return err
	}
	defer closeFile()

	record, err := ctl.files.SetCompanyFile(c.UserContext(), id, field, up)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// DeleteFile removes a company file: the logo slot or one gallery photo.
func (ctl *CompaniesController) DeleteFile(c *fiber.Ctx) error {
	input := struct {
		ID     string `json:"id"`
		Field  string `json:"field"`
		FileID string `json:"fileId"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	id, err := recordID(input.ID)
	if err != nil {
		return err
	}

	record, err := ctl.files.RemoveCompanyFile(c.UserContext(), id, input.Field, input.FileID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// Delete removes the company and its files.
func (ctl *CompaniesController) Delete(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := ctl.companies.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, true)
}
