// Package middleware contains HTTP-surface middleware for the API server.
package middleware

import (
	"lbank/config"
	"lbank/internal/delivery/http/response"
	"lbank/internal/domain/entity"
	"lbank/internal/usecase"

	"github.com/labstack/echo/v4"
)

const contextKeyCurrentUser = "currentUser"

// AuthMiddleware resolves the opaque session cookie to a user. The cookie
// carries the raw session secret; only its hash ever reaches storage.
type AuthMiddleware struct {
	userUC     usecase.UserUsecase
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUC usecase.UserUsecase, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		userUC:     userUC,
		cookieName: cfg.Session.CookieName,
	}
}

// Authenticate rejects requests without a live session. On success the
// resolved user is stored on the echo context for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := m.sessionSecret(c)
		if secret == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
		}

		user, err := m.userUC.CurrentUser(c.Request().Context(), secret)
		if err != nil {
			return err
		}
		if user == nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Session is invalid or expired")
		}

		c.Set(contextKeyCurrentUser, user)

		return next(c)
	}
}

// sessionSecret reads the raw secret from the session cookie, if present.
func (m *AuthMiddleware) sessionSecret(c echo.Context) string {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// CurrentUser returns the user resolved by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(contextKeyCurrentUser).(*entity.User)

	return user
}
