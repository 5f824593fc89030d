// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"sphere/internal/config"
	"sphere/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the httpOnly cookie carrying the session token.
const SessionCookie = "sphere"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired enforces authentication for protected routes. The session
// token is read from the "sphere" cookie; a Bearer Authorization header is
// accepted as a fallback for non-browser clients. Missing or invalid
// credentials always yield 401 with a JSON body.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required."))
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format."))
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithIssuer("sphere-api"),
		jwt.WithAudience("sphere-client"),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired session."))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid token claims."))
	}

	// User identity travels in "sub" (RFC 7519) as a decimal string.
	subStr, ok := claims["sub"].(string)
	if !ok || subStr == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid token subject."))
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token."))
	}

	userID := uint(userIDVal)
	c.Locals("userID", userID)
	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}

	// Sync into the request context so the structured logger and services
	// see the identity without reaching back into Fiber locals.
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

	return c.Next()
}

// OptionalUserID extracts the authenticated user ID on unprotected routes
// so reads can personalize (e.g. liked flags). Returns 0 when the request
// carries no valid session.
func OptionalUserID(c *fiber.Ctx) uint {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithIssuer("sphere-api"), jwt.WithAudience("sphere-client"))
	if err != nil || !token.Valid {
		return 0
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0
	}
	return uint(userIDVal)
}
