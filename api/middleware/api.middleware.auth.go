// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// UserContext is the authenticated identity attached to each request
type UserContext struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Claims is the JWT payload issued at login
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates bearer tokens and issues them at login
type JWTMiddleware struct {
	cfg config.AuthConfig
}

func NewJWTMiddleware(cfg config.AuthConfig) *JWTMiddleware {
	return &JWTMiddleware{cfg: cfg}
}

// GenerateToken issues a signed token for the given user
func (m *JWTMiddleware) GenerateToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.JWTSecret))
}

// Authenticate validates the token and adds user info to context
func (m *JWTMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.NewAuthError("unexpected signing method", nil)
			}
			return []byte(m.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			handleError(w, errors.NewAuthError("invalid token", err))
			return
		}

		userContext := &UserContext{
			ID:       claims.Subject,
			Username: claims.Username,
			Email:    claims.Email,
		}

		ctx := context.WithValue(r.Context(), userContextKey, userContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserContext returns the authenticated user for the request, or nil
// when the request did not pass through Authenticate.
func GetUserContext(r *http.Request) *UserContext {
	user, _ := r.Context().Value(userContextKey).(*UserContext)
	return user
}

// Helper functions

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
