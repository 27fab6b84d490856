package server

import (
	"placeshare/internal/models"
	"placeshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/users/signup. The request is multipart: name,
// email and password fields plus an image file already stored by the upload
// middleware. A failed signup causes that file to be removed again.
func (s *Server) Signup(c *fiber.Ctx) error {
	user, err := s.userService.Signup(c.UserContext(), service.SignupInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Image:    uploadedImagePath(c),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"userId": user.ID,
		"email":  user.Email,
		"token":  token,
	})
}

// Login handles POST /api/users/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"userId": user.ID,
		"email":  user.Email,
		"token":  token,
	})
}
