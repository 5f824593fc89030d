package service

import (
	"context"
	"errors"
	"testing"

	"sphere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	archiveFn          func(context.Context, uint, uint) error
	unarchiveFn        func(context.Context, uint, uint) error
	archivedArticlesFn func(context.Context, uint) ([]models.Article, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Archive(ctx context.Context, userID, articleID uint) error {
	return s.archiveFn(ctx, userID, articleID)
}
func (s *userRepoStub) Unarchive(ctx context.Context, userID, articleID uint) error {
	return s.unarchiveFn(ctx, userID, articleID)
}
func (s *userRepoStub) ArchivedArticles(ctx context.Context, userID uint) ([]models.Article, error) {
	return s.archivedArticlesFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		archiveFn:          func(context.Context, uint, uint) error { return nil },
		unarchiveFn:        func(context.Context, uint, uint) error { return nil },
		archivedArticlesFn: func(context.Context, uint) ([]models.Article, error) { return nil, nil },
	}
}

type articleRepoStub struct {
	createFn         func(context.Context, *models.Article) error
	getByIDFn        func(context.Context, uint, uint) (*models.Article, error)
	getByAuthorIDFn  func(context.Context, uint, int, int, uint) ([]*models.Article, error)
	listFn           func(context.Context, int, int, uint) ([]*models.Article, error)
	updateFn         func(context.Context, *models.Article) error
	deleteFn         func(context.Context, uint) error
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	addResponseFn    func(context.Context, *models.Response) error
	deleteResponseFn func(context.Context, uint, uint) error
}

func (s *articleRepoStub) Create(ctx context.Context, article *models.Article) error {
	return s.createFn(ctx, article)
}
func (s *articleRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Article, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *articleRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset, currentUserID)
}
func (s *articleRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *articleRepoStub) Update(ctx context.Context, article *models.Article) error {
	return s.updateFn(ctx, article)
}
func (s *articleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *articleRepoStub) Like(ctx context.Context, userID, articleID uint) error {
	return s.likeFn(ctx, userID, articleID)
}
func (s *articleRepoStub) Unlike(ctx context.Context, userID, articleID uint) error {
	return s.unlikeFn(ctx, userID, articleID)
}
func (s *articleRepoStub) IsLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, articleID)
}
func (s *articleRepoStub) AddResponse(ctx context.Context, response *models.Response) error {
	return s.addResponseFn(ctx, response)
}
func (s *articleRepoStub) DeleteResponse(ctx context.Context, articleID, responseID uint) error {
	return s.deleteResponseFn(ctx, articleID, responseID)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		createFn: func(context.Context, *models.Article) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Article, error) {
			return &models.Article{ID: id}, nil
		},
		getByAuthorIDFn: func(context.Context, uint, int, int, uint) ([]*models.Article, error) { return nil, nil },
		listFn:          func(context.Context, int, int, uint) ([]*models.Article, error) { return nil, nil },
		updateFn:        func(context.Context, *models.Article) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		likeFn:          func(context.Context, uint, uint) error { return nil },
		unlikeFn:        func(context.Context, uint, uint) error { return nil },
		isLikedFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		addResponseFn:   func(context.Context, *models.Response) error { return nil },
		deleteResponseFn: func(context.Context, uint, uint) error { return nil },
	}
}

type followRepoStub struct {
	followFn      func(context.Context, uint, uint) error
	unfollowFn    func(context.Context, uint, uint) error
	isFollowingFn func(context.Context, uint, uint) (bool, error)
	followersFn   func(context.Context, uint) ([]models.FollowEdge, error)
	followingFn   func(context.Context, uint) ([]models.FollowEdge, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.followingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:      func(context.Context, uint, uint) error { return nil },
		unfollowFn:    func(context.Context, uint, uint) error { return nil },
		isFollowingFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:   func(context.Context, uint) ([]models.FollowEdge, error) { return nil, nil },
		followingFn:   func(context.Context, uint) ([]models.FollowEdge, error) { return nil, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
