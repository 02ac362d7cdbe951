// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"flock/internal/delivery/http/middleware"
	"flock/internal/delivery/http/response"
	"flock/internal/usecase"
)

// sessionCookieMaxAge matches the token lifetime.
const sessionCookieMaxAge = 30 * 24 * time.Hour

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles account creation. On success the session cookie is
// attached alongside the 201 response.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input *usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	setSessionCookie(c, output.Token)

	return response.Success(c, http.StatusCreated, output.User, "User created successfully")
}

// Login handles the login request and attaches a fresh session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	setSessionCookie(c, output.Token)

	return response.Success(c, http.StatusOK, output.User, "Login successful")
}

// Logout clears the session cookie. The operation is idempotent and never
// consults the token codec or the store; a request without a cookie is
// already logged out and still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err != nil || cookie.Value == "" {
		return response.Success(c, http.StatusOK, nil, "No token found, already logged out")
	}

	middleware.ClearSessionCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// CheckAuth returns the current account. The gate has already validated the
// cookie and resolved the subject; this re-fetches so the client sees the
// latest record.
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Unauthorized")
	}

	user, err := h.uc.CheckAuth(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User found")
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
