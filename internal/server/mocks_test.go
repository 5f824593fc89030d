package server

import (
	"context"

	"sphere/internal/config"
	"sphere/internal/models"
	"sphere/internal/repository"
	"sphere/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Archive(ctx context.Context, userID, articleID uint) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockUserRepository) Unarchive(ctx context.Context, userID, articleID uint) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockUserRepository) ArchivedArticles(ctx context.Context, userID uint) ([]models.Article, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

// MockArticleRepository is a mock of the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id, currentUserID uint) (*models.Article, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	args := m.Called(ctx, authorID, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Article, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) Like(ctx context.Context, userID, articleID uint) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockArticleRepository) Unlike(ctx context.Context, userID, articleID uint) error {
	args := m.Called(ctx, userID, articleID)
	return args.Error(0)
}

func (m *MockArticleRepository) IsLiked(ctx context.Context, userID, articleID uint) (bool, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) AddResponse(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockArticleRepository) DeleteResponse(ctx context.Context, articleID, responseID uint) error {
	args := m.Called(ctx, articleID, responseID)
	return args.Error(0)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowEdge), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FollowEdge), args.Error(1)
}

// newTestServer wires a Server around the given mocks with a test config.
func newTestServer(userRepo repository.UserRepository, articleRepo repository.ArticleRepository, followRepo repository.FollowRepository) *Server {
	s := &Server{
		config: &config.Config{
			JWTSecret: "unit-test-secret-of-sufficient-length",
			Env:       "test",
		},
		userRepo:    userRepo,
		articleRepo: articleRepo,
		followRepo:  followRepo,
	}
	s.userService = service.NewUserService(userRepo, articleRepo, followRepo)
	s.articleService = service.NewArticleService(articleRepo, userRepo)
	s.socialService = service.NewSocialService(userRepo, articleRepo, followRepo)
	return s
}

// sessionStub injects an authenticated identity the way the auth middleware
// would after verifying a session token.
func sessionStub(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}
