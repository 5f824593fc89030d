package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sphere/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "@jane", Password: "hash"}, nil)
	followRepo.On("Followers", mock.Anything, uint(1)).Return([]models.FollowEdge{}, nil)
	followRepo.On("Following", mock.Anything, uint(1)).Return([]models.FollowEdge{}, nil)

	s := newTestServer(userRepo, new(MockArticleRepository), followRepo)
	app := fiber.New()
	app.Get("/users/me", sessionStub(1), s.Me)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Message string      `json:"message"`
		Data    models.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "User is signing in.", envelope.Message)
	assert.Equal(t, "@jane", envelope.Data.Username)
	assert.Empty(t, envelope.Data.Password)
}

func TestGetProfile(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		articleRepo := new(MockArticleRepository)
		followRepo := new(MockFollowRepository)

		userRepo.On("GetByUsername", mock.Anything, "@jane").
			Return(&models.User{ID: 1, Username: "@jane"}, nil)
		articleRepo.On("GetByAuthorID", mock.Anything, uint(1), 100, 0, uint(0)).
			Return([]*models.Article{{ID: 5, AuthorID: 1, Title: "Mine"}}, nil)
		userRepo.On("ArchivedArticles", mock.Anything, uint(1)).Return(nil, nil)
		followRepo.On("Followers", mock.Anything, uint(1)).Return([]models.FollowEdge{}, nil)
		followRepo.On("Following", mock.Anything, uint(1)).Return([]models.FollowEdge{}, nil)

		s := newTestServer(userRepo, articleRepo, followRepo)
		app := fiber.New()
		app.Get("/users/:username", s.GetProfile)

		req := httptest.NewRequest(http.MethodGet, "/users/@jane", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var envelope struct {
			Message string      `json:"message"`
			Data    models.User `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "User found.", envelope.Message)
		require.Len(t, envelope.Data.Articles, 1)
		assert.Equal(t, "Mine", envelope.Data.Articles[0].Title)
	})

	t.Run("Unknown handle", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByUsername", mock.Anything, "@ghost").Return(nil, nil)

		s := newTestServer(userRepo, new(MockArticleRepository), new(MockFollowRepository))
		app := fiber.New()
		app.Get("/users/:username", s.GetProfile)

		req := httptest.NewRequest(http.MethodGet, "/users/@ghost", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "User not found.", body.Message)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "@jane", Fullname: "Jane"}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.ID == 1 && u.Fullname == "Jane Doe"
		})).Return(nil)

		s := newTestServer(userRepo, new(MockArticleRepository), new(MockFollowRepository))
		app := fiber.New()
		app.Put("/users/update/profile/:id", sessionStub(1), s.UpdateProfile)

		body, _ := json.Marshal(map[string]string{"username": "@jane", "fullname": "Jane Doe"})
		req := httptest.NewRequest(http.MethodPut, "/users/update/profile/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var envelope struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "Profile updated.", envelope.Message)
		userRepo.AssertExpectations(t)
	})

	t.Run("Another user's profile is off limits", func(t *testing.T) {
		s := newTestServer(new(MockUserRepository), new(MockArticleRepository), new(MockFollowRepository))
		app := fiber.New()
		app.Put("/users/update/profile/:id", sessionStub(1), s.UpdateProfile)

		body, _ := json.Marshal(map[string]string{"fullname": "Impostor"})
		req := httptest.NewRequest(http.MethodPut, "/users/update/profile/2", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Special characters rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "@jane"}, nil)

		s := newTestServer(userRepo, new(MockArticleRepository), new(MockFollowRepository))
		app := fiber.New()
		app.Put("/users/update/profile/:id", sessionStub(1), s.UpdateProfile)

		body, _ := json.Marshal(map[string]string{"username": "jane!"})
		req := httptest.NewRequest(http.MethodPut, "/users/update/profile/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var respBody struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.Equal(t, "Username cannot contain special characters!", respBody.Message)
	})
}
