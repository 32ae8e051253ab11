package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/service"
)

// ProjectsController handles the audiovisual-project routes.
type ProjectsController struct {
	projects *service.Projects
	files    *service.Files
}

// NewProjectsController builds the projects controller.
func NewProjectsController(projects *service.Projects, files *service.Files) *ProjectsController {
	return &ProjectsController{projects: projects, files: files}
}

// Register registers the routes under /api/projects. Reads are public,
// writes require a session.
func (ctl *ProjectsController) Register(api fiber.Router, requireAuth fiber.Handler) {
	group := api.Group("/projects")

	group.Get("/", ctl.List)
	group.Post("/", requireAuth, ctl.Create)
	group.Put("/edit", requireAuth, ctl.Edit)
	group.Put("/files", requireAuth, ctl.UploadFile)
	group.Put("/files/delete", requireAuth, ctl.DeleteFile)
	group.Get("/:id", ctl.Get)
	group.Delete("/:id", requireAuth, ctl.Delete)
}

// List returns every project.
func (ctl *ProjectsController) List(c *fiber.Ctx) error {
	records, err := ctl.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, records)
}

// Get returns one project.
func (ctl *ProjectsController) Get(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	record, err := ctl.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, record)
}

// Create stores a new project owned by the caller.
func (ctl *ProjectsController) Create(c *fiber.Ctx) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	record := &model.AudiovisualProject{}
	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}

	if err := validateProject(record); err != nil {
		return err
	}

	created, err := ctl.projects.Create(c.UserContext(), ownerID, record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, created)
}

// Edit patches a project.
func (ctl *ProjectsController) Edit(c *fiber.Ctx) error {
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

	record, err := ctl.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}
	record.ID = id

	if err := validateProject(record); err != nil {
		return err
	}

	updated, err := ctl.projects.Update(c.UserContext(), record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, updated)
}

// UploadFile stores a project file. Multipart form with an "id" value and
// the file under one of the slot fields or "stills".
func (ctl *ProjectsController) UploadFile(c *fiber.Ctx) error {
	id, err := recordID(c.FormValue("id"))
	if err != nil {
		return err
	}

	field, up, closeFile, err := formUpload(c,
		service.ProjectFieldDirectorPhoto,
		service.ProjectFieldProducerPhoto,
		service.ProjectFieldPoster,
		service.ProjectFieldDossier,
		service.ProjectFieldStills,
	)
	if err != nil {
		return err
	}
	defer closeFile()

	record, err := ctl.files.SetProjectFile(c.UserContext(), id, field, up)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// DeleteFile removes a project file: a single slot or one still.
func (ctl *ProjectsController) DeleteFile(c *fiber.Ctx) error {
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

	record, err := ctl.files.RemoveProjectFile(c.UserContext(), id, input.Field, input.FileID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// Delete removes the project and its files.
func (ctl *ProjectsController) Delete(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := ctl.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, true)
}
