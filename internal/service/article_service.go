// Package service holds the business rules that sit between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"sphere/internal/models"
	"sphere/internal/observability"
	"sphere/internal/repository"
)

// ArticleService owns the article lifecycle: publishing, editing,
// deleting, likes and responses.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
}

type CreateArticleInput struct {
	AuthorID uint
	Title    string
	Summary  string
	Content  string
}

type EditArticleInput struct {
	ArticleID uint
	Title     string
	Summary   string
	Content   string
}

type DeleteArticleInput struct {
	ArticleID        uint
	RequestingUserID uint
}

type AddResponseInput struct {
	ArticleID uint
	UserID    uint
	Text      string
}

type DeleteResponseInput struct {
	ArticleID  uint
	ResponseID uint
}

func NewArticleService(
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
	}
}

func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if in.Title == "" || in.Summary == "" || in.Content == "" {
		return nil, models.NewValidationError("Cannot create article.")
	}

	// The author must exist before anything is written.
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	article := &models.Article{
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Summary:  in.Summary,
		Content:  in.Content,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, article.ID, in.AuthorID)
}

func (s *ArticleService) GetArticle(ctx context.Context, articleID, currentUserID uint) (*models.Article, error) {
	return s.articleRepo.GetByID(ctx, articleID, currentUserID)
}

// ListArticles returns published articles newest first with their author
// and counts resolved.
func (s *ArticleService) ListArticles(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.articleRepo.List(ctx, limit, offset, currentUserID)
}

// EditArticle replaces title, summary and content. Likes and responses
// are untouched.
func (s *ArticleService) EditArticle(ctx context.Context, in EditArticleInput) (*models.Article, error) {
	if in.Title == "" || in.Summary == "" || in.Content == "" {
		return nil, models.NewValidationError("Please fulfill the form.")
	}

	article, err := s.articleRepo.GetByID(ctx, in.ArticleID, 0)
	if err != nil {
		return nil, err
	}

	article.Title = in.Title
	article.Summary = in.Summary
	article.Content = in.Content
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, in.ArticleID, 0)
}

// DeleteArticle hard-deletes the article together with its likes,
// responses and archive entries.
func (s *ArticleService) DeleteArticle(ctx context.Context, in DeleteArticleInput) error {
	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID, 0); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, in.RequestingUserID); err != nil {
		return err
	}
	if err := s.articleRepo.Delete(ctx, in.ArticleID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("article_delete").Inc()
	return nil
}

// LikeArticle records the like; liking twice is a success no-op.
func (s *ArticleService) LikeArticle(ctx context.Context, articleID, userID uint) error {
	if _, err := s.articleRepo.GetByID(ctx, articleID, 0); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.articleRepo.Like(ctx, userID, articleID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("like").Inc()
	return nil
}

// UnlikeArticle removes the like; removing an absent like is a no-op.
func (s *ArticleService) UnlikeArticle(ctx context.Context, articleID, userID uint) error {
	if _, err := s.articleRepo.GetByID(ctx, articleID, 0); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.articleRepo.Unlike(ctx, userID, articleID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("unlike").Inc()
	return nil
}

// AddResponse appends a response and returns the article with responses
// and their users resolved.
func (s *ArticleService) AddResponse(ctx context.Context, in AddResponseInput) (*models.Article, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Please write a response.")
	}

	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID, 0); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	response := &models.Response{
		ArticleID: in.ArticleID,
		UserID:    in.UserID,
		Text:      in.Text,
	}
	if err := s.articleRepo.AddResponse(ctx, response); err != nil {
		return nil, err
	}
	observability.RelationshipMutations.WithLabelValues("response_add").Inc()

	return s.articleRepo.GetByID(ctx, in.ArticleID, in.UserID)
}

// DeleteResponse removes a response by id. Removing a response that no
// longer exists still succeeds and returns the current article.
func (s *ArticleService) DeleteResponse(ctx context.Context, in DeleteResponseInput) (*models.Article, error) {
	if _, err := s.articleRepo.GetByID(ctx, in.ArticleID, 0); err != nil {
		return nil, err
	}
	if err := s.articleRepo.DeleteResponse(ctx, in.ArticleID, in.ResponseID); err != nil {
		return nil, err
	}
	observability.RelationshipMutations.WithLabelValues("response_delete").Inc()

	return s.articleRepo.GetByID(ctx, in.ArticleID, 0)
}
