package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"flock/internal/delivery/http/middleware"
	"flock/internal/delivery/http/response"
	"flock/internal/usecase"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile handles the public profile lookup by username.
func (h *UserHandler) GetProfile(c echo.Context) error {
	username := c.Param("username")

	user, err := h.uc.GetProfile(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// FollowUnfollow toggles the follow edge from the current user to the user
// named in the path.
func (h *UserHandler) FollowUnfollow(c echo.Context) error {
	currentUserID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Unauthorized")
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	output, err := h.uc.FollowUnfollow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Successfully unfollowed"
	if output.Following {
		message = "Successfully followed"
	}

	return response.Success(c, http.StatusOK, output, message)
}

// SuggestedUsers lists accounts the current user does not follow yet.
func (h *UserHandler) SuggestedUsers(c echo.Context) error {
	currentUserID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Unauthorized")
	}

	suggested, err := h.uc.SuggestedUsers(c.Request().Context(), currentUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, suggested, "Suggested users found")
}

// UpdateProfile applies a partial profile update for the current user.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Unauthorized")
	}

	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), currentUserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// Notifications lists the current user's notifications, newest first.
func (h *UserHandler) Notifications(c echo.Context) error {
	currentUserID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Unauthorized")
	}

	notifications, err := h.uc.Notifications(c.Request().Context(), currentUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
