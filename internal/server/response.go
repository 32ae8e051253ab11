package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Status    int    `json:"status"`
	StatusMsg string `json:"statusMsg"`
	Error     string `json:"error"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successEnvelope{Success: true, Data: data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorEnvelope{
		Status:    status,
		StatusMsg: http.StatusText(status),
		Error:     message,
	})
}
