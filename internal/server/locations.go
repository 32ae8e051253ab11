package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/model"
	"github.com/ecfilm/catalog-api/internal/service"
)

// LocationsController handles the filming-location routes.
type LocationsController struct {
	locations *service.Locations
	files     *service.Files
}

// NewLocationsController builds the locations controller.
func NewLocationsController(locations *service.Locations, files *service.Files) *LocationsController {
	return &LocationsController{locations: locations, files: files}
}

// Register registers the routes under /api/locations. Reads are public,
// writes require a session.
func (ctl *LocationsController) Register(api fiber.Router, requireAuth fiber.Handler) {
	group := api.Group("/locations")

	group.Get("/", ctl.List)
	group.Post("/", requireAuth, ctl.Create)
	group.Put("/edit", requireAuth, ctl.Edit)
	group.Put("/files", requireAuth, ctl.UploadFile)
	group.Put("/files/delete", requireAuth, ctl.DeleteFile)
	group.Get("/:id", ctl.Get)
	group.Delete("/:id", requireAuth, ctl.Delete)
}

// List returns every location.
func (ctl *LocationsController) List(c *fiber.Ctx) error {
	records, err := ctl.locations.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, records)
}

// Get returns one location.
func (ctl *LocationsController) Get(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	record, err := ctl.locations.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, record)
}

// Create stores a new location owned by the caller.
func (ctl *LocationsController) Create(c *fiber.Ctx) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	record := &model.Location{}
	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}

	if err := validateLocation(record); err != nil {
		return err
	}

	created, err := ctl.locations.Create(c.UserContext(), ownerID, record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, created)
}

// Edit patches a location. The body carries the record ID plus the fields
// to change; omitted fields keep their stored value.
func (ctl *LocationsController) Edit(c *fiber.Ctx) error {
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

	record, err := ctl.locations.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	if err := c.BodyParser(record); err != nil {
		return auth.ErrInvalidData
	}
	record.ID = id

	if err := validateLocation(record); err != nil {
		return err
	}

	updated, err := ctl.locations.Update(c.UserContext(), record)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, updated)
}

// UploadFile appends a photo to the location's gallery. Multipart form with
// an "id" value and the file under "photos".
func (ctl *LocationsController) UploadFile(c *fiber.Ctx) error {
	id, err := recordID(c.FormValue("id"))
	if err != nil {
		return err
	}

	_, up, closeFile, err := formUpload(c, "photos")
	if err != nil {
		return err
	}
	defer closeFile()

	record, err := ctl.files.AddLocationPhoto(c.UserContext(), id, up)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// DeleteFile removes one photo from the gallery and the store.
func (ctl *LocationsController) DeleteFile(c *fiber.Ctx) error {
	input := struct {
		ID     string `json:"id"`
		FileID string `json:"fileId"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return auth.ErrInvalidData
	}

	id, err := recordID(input.ID)
	if err != nil {
		return err
	}

	record, err := ctl.files.RemoveLocationPhoto(c.UserContext(), id, input.FileID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, record)
}

// Delete removes the location and its files.
func (ctl *LocationsController) Delete(c *fiber.Ctx) error {
	id, err := recordID(c.Params("id"))
	if err != nil {
		return err
	}

	if err := ctl.locations.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, true)
}
