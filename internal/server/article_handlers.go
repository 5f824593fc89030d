package server

import (
	"sphere/internal/middleware"
	"sphere/internal/models"
	"sphere/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateArticle handles POST /articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Cannot create article."))
	}

	article, err := s.articleService.CreateArticle(c.Context(), service.CreateArticleInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article posted.", article)
}

// GetArticles handles GET /articles. Articles come back newest first; a
// valid session personalizes the liked flag on each one.
func (s *Server) GetArticles(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID := middleware.OptionalUserID(c)

	articles, err := s.articleService.ListArticles(c.Context(), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "All articles fetched.", articles)
}

// GetArticle handles GET /articles/:id
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := middleware.OptionalUserID(c)

	article, err := s.articleService.GetArticle(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article found.", article)
}

// EditArticle handles PUT /articles/:id
func (s *Server) EditArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}

	if _, err := s.articleService.EditArticle(c.Context(), service.EditArticleInput{
		ArticleID: id,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article updated.", nil)
}

// DeleteArticle handles DELETE /articles/:id. The article's likes,
// responses and archive entries go with it.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.DeleteArticle(c.Context(), service.DeleteArticleInput{
		ArticleID:        id,
		RequestingUserID: currentUserID(c),
	}); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article deleted.", nil)
}

// LikeArticle handles PUT /articles/update/likes/:id
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.LikeArticle(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article liked.", nil)
}

// UnlikeArticle handles DELETE /articles/update/likes/:id
func (s *Server) UnlikeArticle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.articleService.UnlikeArticle(c.Context(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article unliked.", nil)
}

// AddResponse handles PUT /articles/update/responses/:id
func (s *Server) AddResponse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please write a response."))
	}

	article, err := s.articleService.AddResponse(c.Context(), service.AddResponseInput{
		ArticleID: id,
		UserID:    currentUserID(c),
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article responded.", article)
}

// DeleteResponse handles DELETE /articles/update/responses/:id
func (s *Server) DeleteResponse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ResponseID uint `json:"responseId"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil || req.ResponseID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Response ID is required."))
	}

	article, err := s.articleService.DeleteResponse(c.Context(), service.DeleteResponseInput{
		ArticleID:  id,
		ResponseID: req.ResponseID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Response deleted.", article)
}
