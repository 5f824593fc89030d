package service

import (
	"context"

	"sphere/internal/models"
	"sphere/internal/observability"
	"sphere/internal/repository"
)

// SocialService owns the user-to-user and user-to-article relationships
// that are not part of the article aggregate: follows and archives.
type SocialService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	followRepo  repository.FollowRepository
}

func NewSocialService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	followRepo repository.FollowRepository,
) *SocialService {
	return &SocialService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		followRepo:  followRepo,
	}
}

// Follow creates the directed edge follower -> target. Following twice
// is a success no-op; following yourself is rejected.
func (s *SocialService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot follow yourself.")
	}
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.followRepo.Follow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot unfollow yourself.")
	}
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("unfollow").Inc()
	return nil
}

func (s *SocialService) Followers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

func (s *SocialService) Following(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// ArchiveArticle bookmarks the article for the user. Set semantics:
// archiving twice is a success no-op.
func (s *SocialService) ArchiveArticle(ctx context.Context, userID, articleID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.articleRepo.GetByID(ctx, articleID, 0); err != nil {
		return err
	}
	if err := s.userRepo.Archive(ctx, userID, articleID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("archive").Inc()
	return nil
}

// UnarchiveArticle removes the bookmark; removing an absent one is a no-op.
func (s *SocialService) UnarchiveArticle(ctx context.Context, userID, articleID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.articleRepo.GetByID(ctx, articleID, 0); err != nil {
		return err
	}
	if err := s.userRepo.Unarchive(ctx, userID, articleID); err != nil {
		return err
	}
	observability.RelationshipMutations.WithLabelValues("unarchive").Inc()
	return nil
}
