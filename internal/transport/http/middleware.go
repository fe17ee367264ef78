package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/service"
)

const contextUserKey = "auth.user"

// RequireAuth resolves the bearer credential on every request and attaches
// the authenticated user to the echo context for downstream handlers.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return writeServiceError(c, err)
			}
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return writeServiceError(c, err)
			}
			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

// RequireRoles gates a route to identities whose role is in the allowed
// set. It composes after RequireAuth.
func RequireRoles(auth *service.AuthService, allowed domain.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return writeServiceError(c, service.ErrMissingCredential)
			}
			if err := auth.Authorize(user, allowed); err != nil {
				return writeServiceError(c, err)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the identity resolved by RequireAuth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.TrimSpace(authHeader) == "" {
		return "", service.ErrMissingCredential
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", service.ErrMissingCredential
	}
	return strings.TrimSpace(parts[1]), nil
}
