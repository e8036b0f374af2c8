package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// All error responses share the {"msg": ..., "id": ...} wire shape; id
// is a machine-readable code and only present where clients branch on
// it (login failures, duplicate registration).

// Msg sends a {"msg": ...} status response.
func Msg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"msg": msg})
}

// MsgWithID sends a {"msg": ..., "id": ...} response.
func MsgWithID(c *fiber.Ctx, status int, msg, id string) error {
	return c.Status(status).JSON(fiber.Map{"msg": msg, "id": id})
}

func BadRequest(c *fiber.Ctx, msg string) error {
	return Msg(c, fiber.StatusBadRequest, msg)
}

func Unauthorized(c *fiber.Ctx, msg string) error {
	return Msg(c, fiber.StatusUnauthorized, msg)
}

func NotFound(c *fiber.Ctx, msg string) error {
	return Msg(c, fiber.StatusNotFound, msg)
}

// ServerError logs the underlying error and returns an opaque 500; store
// and runtime failures are never detailed to the client.
func ServerError(c *fiber.Ctx, err error) error {
	log.Printf("server error on %s %s: %v", c.Method(), c.Path(), err)
	return Msg(c, fiber.StatusInternalServerError, "Server error")
}
