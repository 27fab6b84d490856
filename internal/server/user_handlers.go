package server

import (
	"strconv"

	"placeshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users. Password hashes never appear in the
// response; the model hides them from JSON.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, err := s.userService.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if users == nil {
		users = []models.User{}
	}

	return c.JSON(fiber.Map{"users": users})
}
