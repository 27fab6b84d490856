package server

import (
	"strconv"

	"placeshare/internal/models"
	"placeshare/internal/upload"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a positive integer route parameter. A malformed id is
// reported as not-found so probing with garbage ids looks like a miss.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("Could not find a place for the provided id.")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// uploadedImagePath returns the path stored by the upload middleware.
func uploadedImagePath(c *fiber.Ctx) string {
	if p, ok := c.Locals(upload.LocalPathKey).(string); ok {
		return p
	}
	return ""
}
