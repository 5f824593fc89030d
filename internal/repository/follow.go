package repository

import (
	"context"

	"sphere/internal/cache"
	"sphere/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations.
// A single follows row backs both the follower and following views.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.FollowEdge, error)
	Following(ctx context.Context, userID uint) ([]models.FollowEdge, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	// Set semantics: following someone twice is a no-op.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Where("followee_id = ?", userID).
		Order("created_at DESC").
		Preload("Follower").
		Find(&follows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	edges := make([]models.FollowEdge, 0, len(follows))
	for _, f := range follows {
		if f.Follower == nil {
			continue
		}
		f.Follower.Sanitize()
		edges = append(edges, models.FollowEdge{User: *f.Follower, CreatedAt: f.CreatedAt})
	}
	return edges, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Preload("Followee").
		Find(&follows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	edges := make([]models.FollowEdge, 0, len(follows))
	for _, f := range follows {
		if f.Followee == nil {
			continue
		}
		f.Followee.Sanitize()
		edges = append(edges, models.FollowEdge{User: *f.Followee, CreatedAt: f.CreatedAt})
	}
	return edges, nil
}
