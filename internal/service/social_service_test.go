package service

import (
	"context"
	"testing"

	"sphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_Follow(t *testing.T) {
	t.Parallel()

	t.Run("self follow is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialService(noopUserRepo(), noopArticleRepo(), noopFollowRepo())
		assertValidationError(t, svc.Follow(context.Background(), 1, 1))
	})

	t.Run("target must exist", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			if id == 2 {
				return nil, models.NewNotFoundError("User", id)
			}
			return &models.User{ID: id}, nil
		}
		svc := NewSocialService(userRepo, noopArticleRepo(), noopFollowRepo())
		assertNotFoundError(t, svc.Follow(context.Background(), 1, 2))
	})

	t.Run("edge is created follower to target", func(t *testing.T) {
		t.Parallel()
		var gotFollower, gotFollowee uint
		followRepo := noopFollowRepo()
		followRepo.followFn = func(_ context.Context, followerID, followeeID uint) error {
			gotFollower, gotFollowee = followerID, followeeID
			return nil
		}
		svc := NewSocialService(noopUserRepo(), noopArticleRepo(), followRepo)
		require.NoError(t, svc.Follow(context.Background(), 1, 2))
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowee)
	})
}

func TestSocialService_Unfollow(t *testing.T) {
	t.Parallel()

	t.Run("self unfollow is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialService(noopUserRepo(), noopArticleRepo(), noopFollowRepo())
		assertValidationError(t, svc.Unfollow(context.Background(), 3, 3))
	})

	t.Run("absent edge still succeeds", func(t *testing.T) {
		t.Parallel()
		svc := NewSocialService(noopUserRepo(), noopArticleRepo(), noopFollowRepo())
		assert.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	})
}

func TestSocialService_FollowerListings(t *testing.T) {
	t.Parallel()

	followRepo := noopFollowRepo()
	followRepo.followersFn = func(_ context.Context, userID uint) ([]models.FollowEdge, error) {
		return []models.FollowEdge{{User: models.User{ID: 2, Username: "@alice"}}}, nil
	}
	svc := NewSocialService(noopUserRepo(), noopArticleRepo(), followRepo)

	edges, err := svc.Followers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "@alice", edges[0].User.Username)
}

func TestSocialService_Archive(t *testing.T) {
	t.Parallel()

	t.Run("article must exist", func(t *testing.T) {
		t.Parallel()
		articleRepo := noopArticleRepo()
		articleRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Article, error) {
			return nil, models.NewNotFoundError("Article", id)
		}
		svc := NewSocialService(noopUserRepo(), articleRepo, noopFollowRepo())
		assertNotFoundError(t, svc.ArchiveArticle(context.Background(), 1, 9))
	})

	t.Run("user must exist", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewSocialService(userRepo, noopArticleRepo(), noopFollowRepo())
		assertNotFoundError(t, svc.ArchiveArticle(context.Background(), 99, 1))
	})

	t.Run("archive and unarchive pass the right pair", func(t *testing.T) {
		t.Parallel()
		var archived, unarchived [2]uint
		userRepo := noopUserRepo()
		userRepo.archiveFn = func(_ context.Context, userID, articleID uint) error {
			archived = [2]uint{userID, articleID}
			return nil
		}
		userRepo.unarchiveFn = func(_ context.Context, userID, articleID uint) error {
			unarchived = [2]uint{userID, articleID}
			return nil
		}
		svc := NewSocialService(userRepo, noopArticleRepo(), noopFollowRepo())

		require.NoError(t, svc.ArchiveArticle(context.Background(), 5, 7))
		assert.Equal(t, [2]uint{5, 7}, archived)

		require.NoError(t, svc.UnarchiveArticle(context.Background(), 5, 7))
		assert.Equal(t, [2]uint{5, 7}, unarchived)
	})
}
