package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"sphere/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type tokenOpts struct {
	issuer   string
	audience string
	exp      time.Duration
	omitExp  bool
}

func signTestToken(t *testing.T, userID uint, opts tokenOpts) string {
	t.Helper()

	if opts.issuer == "" {
		opts.issuer = "sphere-api"
	}
	if opts.audience == "" {
		opts.audience = "sphere-client"
	}
	if opts.exp == 0 {
		opts.exp = time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": "@jane",
		"iss":      opts.issuer,
		"aud":      opts.audience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}
	if !opts.omitExp {
		claims["exp"] = now.Add(opts.exp).Unix()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/protected", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	tests := []struct {
		name           string
		cookie         string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Session Cookie",
			cookie:         signTestToken(t, 123, tokenOpts{}),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Bearer Header Fallback",
			authHeader:     "Bearer " + signTestToken(t, 7, tokenOpts{}),
			expectedStatus: http.StatusOK,
			expectedUserID: 7,
		},
		{
			name:           "Missing Credentials",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Header Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			cookie:         "malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			cookie:         signTestToken(t, 123, tokenOpts{exp: -time.Hour}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token Without Expiry",
			cookie:         signTestToken(t, 123, tokenOpts{omitExp: true}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Issuer",
			cookie:         signTestToken(t, 123, tokenOpts{issuer: "someone-else"}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Audience",
			cookie:         signTestToken(t, 123, tokenOpts{audience: "other-client"}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, float64(tt.expectedUserID), body["userID"])
			}
		})
	}
}

func TestOptionalUserID(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/feed", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": OptionalUserID(c)})
	})

	tests := []struct {
		name           string
		cookie         string
		expectedUserID float64
	}{
		{
			name:           "No Session",
			expectedUserID: 0,
		},
		{
			name:           "Valid Session",
			cookie:         signTestToken(t, 42, tokenOpts{}),
			expectedUserID: 42,
		},
		{
			name:           "Garbage Token Treated As Anonymous",
			cookie:         "not-a-jwt",
			expectedUserID: 0,
		},
		{
			name:           "Expired Session Treated As Anonymous",
			cookie:         signTestToken(t, 42, tokenOpts{exp: -time.Minute}),
			expectedUserID: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/feed", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedUserID, body["userID"])
		})
	}
}
