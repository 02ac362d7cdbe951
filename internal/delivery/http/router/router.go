// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"flock/internal/delivery/http/middleware"
	"flock/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/checkAuth", r.authHandler.CheckAuth, r.authMiddleware.Authenticate)
	}

	// User routes that require authentication
	userGroup := e.Group("/api/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile/:username", r.userHandler.GetProfile)
		userGroup.GET("/suggested", r.userHandler.SuggestedUsers)
		userGroup.POST("/follow/:id", r.userHandler.FollowUnfollow)
		userGroup.POST("/update", r.userHandler.UpdateProfile)
		userGroup.GET("/notifications", r.userHandler.Notifications)
	}
}
