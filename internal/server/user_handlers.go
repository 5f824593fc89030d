package server

import (
	"sphere/internal/models"
	"sphere/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Me handles GET /users/me. The identity comes from the verified session,
// never from the request body.
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "User is signing in.", user)
}

// GetProfile handles GET /users/:username. The handle may be given with or
// without its leading "@".
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required."))
	}

	user, err := s.userService.GetProfile(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "User found.", user)
}

// UpdateProfile handles PUT /users/update/profile/:id
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("You can only update your own profile."))
	}

	var req struct {
		Username string `json:"username"`
		Fullname string `json:"fullname"`
		Bio      string `json:"bio"`
		About    string `json:"about"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   id,
		Username: req.Username,
		Fullname: req.Fullname,
		Bio:      req.Bio,
		About:    req.About,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile updated.", user)
}
