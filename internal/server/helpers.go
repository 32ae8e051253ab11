package server

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ecfilm/catalog-api/internal/auth"
	"github.com/ecfilm/catalog-api/internal/service"
)

// callerID resolves the authenticated caller's user ID from the session
// claims RequireAuth stored on the context.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromCtx(c)
	if !ok {
		return uuid.Nil, auth.ErrNoCredentials
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, auth.ErrTokenMalformed
	}

	return id, nil
}

// recordID parses a record identifier. A malformed ID behaves like a missing
// record, not a validation failure.
func recordID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, auth.ErrNotExist
	}
	return id, nil
}

// formUpload pulls the first file present under the given multipart field
// names. The returned close func releases the opened file.
func formUpload(c *fiber.Ctx, fields ...string) (string, service.Upload, func(), error) {
	var header *multipart.FileHeader
	var field string

	for _, name := range fields {
		fh, err := c.FormFile(name)
		if err == nil && fh != nil {
			header, field = fh, name
			break
		}
	}

	if header == nil {
		return "", service.Upload{}, nil, auth.ErrInvalidData
	}

	file, err := header.Open()
	if err != nil {
		return "", service.Upload{}, nil, auth.ErrInvalidData
	}

	up := service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	}

	return field, up, func() { file.Close() }, nil
}
