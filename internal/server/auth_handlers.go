package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sphere/internal/middleware"
	"sphere/internal/models"
	"sphere/internal/observability"
	"sphere/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 7 * 24 * time.Hour

// SignUp handles POST /users/sign-up. A fresh account gets a generated
// "@user..." handle and the default bio; the handle can be changed later
// through the profile update endpoint.
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req struct {
		Fullname string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}

	if req.Fullname == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		observability.AuthAttempts.WithLabelValues("sign_up", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email already binded with existing account."))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: defaultUsername(),
		Email:    email,
		Password: string(hashedPassword),
		Fullname: req.Fullname,
		Bio:      models.DefaultBio,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		observability.AuthAttempts.WithLabelValues("sign_up", "failure").Inc()
		return respondServiceError(c, createErr)
	}

	observability.AuthAttempts.WithLabelValues("sign_up", "success").Inc()
	return models.Respond(c, fiber.StatusOK, "New account created successfully!", nil)
}

// SignIn handles POST /users/sign-in. On success the session token is set
// as an httpOnly cookie; the body carries the signed-in user.
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Please fulfill the form."))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		observability.AuthAttempts.WithLabelValues("sign_in", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password."))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		observability.AuthAttempts.WithLabelValues("sign_in", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password."))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	observability.AuthAttempts.WithLabelValues("sign_in", "success").Inc()
	user.Sanitize()
	return models.Respond(c, fiber.StatusOK, "Signed in successfully.", user)
}

// SignOut handles POST /users/sign-out by expiring the session cookie.
func (s *Server) SignOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return models.Respond(c, fiber.StatusOK, "Signed out successfully!", nil)
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "sphere-api",                           // Issuer
		"aud":      "sphere-client",                        // Audience
		"exp":      now.Add(sessionDuration).Unix(),        // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      generateJTI(),                          // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// defaultUsername builds the placeholder handle assigned at sign-up.
func defaultUsername() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "@user" + suffix[:10]
}
