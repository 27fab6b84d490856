package server

import (
	"strconv"

	"placeshare/internal/models"
	"placeshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPlace handles GET /api/places/:id.
func (s *Server) GetPlace(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	place, err := s.placeService.GetPlace(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"place": place})
}

// GetUserPlaces handles GET /api/places/user/:userId. A user without places
// gets an empty list.
func (s *Server) GetUserPlaces(c *fiber.Ctx) error {
	raw := c.Params("userId")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Could not find places for the provided user id."))
	}

	places, svcErr := s.placeService.GetPlacesByOwner(c.UserContext(), uint(userID))
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{"places": places})
}

// CreatePlace handles POST /api/places. The request is multipart: title,
// description and address fields plus an image file already stored by the
// upload middleware. The address is geocoded before anything is persisted.
func (s *Server) CreatePlace(c *fiber.Ctx) error {
	place, err := s.placeService.CreatePlace(c.UserContext(), service.CreatePlaceInput{
		UserID:      currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
		Image:       uploadedImagePath(c),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"place": place})
}

// UpdatePlace handles PATCH /api/places/:id. Only title and description are
// editable, and only by the creator.
func (s *Server) UpdatePlace(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	place, err := s.placeService.UpdatePlace(c.UserContext(), service.UpdatePlaceInput{
		UserID:      currentUserID(c),
		PlaceID:     id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"place": place})
}

// DeletePlace handles DELETE /api/places/:id. Only the creator may delete;
// the stored image file is removed after the database delete commits.
func (s *Server) DeletePlace(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if err := s.placeService.DeletePlace(c.UserContext(), service.DeletePlaceInput{
		UserID:  currentUserID(c),
		PlaceID: id,
	}); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Deleted place."})
}
