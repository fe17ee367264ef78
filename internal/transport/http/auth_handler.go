package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/service"
	"github.com/tourista/tourista-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	users := e.Group("/api/v1/users")
	users.POST("/signup", handler.signup)
	users.POST("/login", handler.login)
	users.POST("/forgot-password", handler.forgotPassword)
	users.PATCH("/reset-password/:token", handler.resetPassword)

	users.GET("/me", handler.me, RequireAuth(auth))
	users.PATCH("/password", handler.changePassword, RequireAuth(auth))

	users.GET("", handler.listUsers,
		RequireAuth(auth), RequireRoles(auth, domain.NewRoleSet(domain.RoleAdmin)))
}

func (h *AuthHandler) listUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := h.auth.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	payload := make([]AuthUser, 0, len(users))
	for i := range users {
		payload = append(payload, buildAuthUser(&users[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"users": payload,
		"meta":  UsersMeta{Limit: limit, Offset: offset, Count: len(payload)},
	})
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, buildTokenResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeServiceError(c, service.ErrMissingCredential)
	}
	return c.JSON(http.StatusOK, util.Data("user", buildAuthUser(user)))
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return writeServiceError(c, service.ErrMissingCredential)
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("message", "password reset email sent"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	result, err := h.auth.ConfirmPasswordReset(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func buildTokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      buildAuthUser(result.User),
	}
}
