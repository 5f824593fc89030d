package server

import (
	"sphere/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ArchiveArticle handles PUT /users/update/archives/:id where :id is the
// archiving user. Archiving is a set operation: saving the same article
// twice leaves a single bookmark.
func (s *Server) ArchiveArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("You can only manage your own archives."))
	}

	articleID, err := s.parseArticleIDFromBody(c)
	if err != nil {
		return nil
	}

	if err := s.socialService.ArchiveArticle(c.Context(), id, articleID); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article archived.", nil)
}

// UnarchiveArticle handles DELETE /users/update/archives/:id
func (s *Server) UnarchiveArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if id != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("You can only manage your own archives."))
	}

	articleID, err := s.parseArticleIDFromBody(c)
	if err != nil {
		return nil
	}

	if err := s.socialService.UnarchiveArticle(c.Context(), id, articleID); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article unarchived.", nil)
}

// Follow handles PUT /users/update/following/:id where :id is the user
// being followed. The follower is always the authenticated user.
func (s *Server) Follow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.Follow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Followed.", nil)
}

// Unfollow handles DELETE /users/update/following/:id
func (s *Server) Unfollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Unfollowed.", nil)
}

// parseArticleIDFromBody reads the archived article's id from the request
// body. Like parseID it writes the 400 itself and returns errResponseWritten.
func (s *Server) parseArticleIDFromBody(c *fiber.Ctx) (uint, error) {
	var req struct {
		ArticleID uint `json:"articleId"`
	}
	if err := c.BodyParser(&req); err != nil || req.ArticleID == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Article ID is required."))
		return 0, errResponseWritten
	}
	return req.ArticleID, nil
}
