// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lbank/internal/delivery/http/middleware"
	"lbank/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	BankHandler    *handler.BankHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	bankHandler    *handler.BankHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		bankHandler:    params.BankHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Auth routes, no session required
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// User routes that require an authenticated session
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
	}

	// Bank-linking routes, all behind the session
	bankGroup := e.Group("/bank")
	bankGroup.Use(r.authMiddleware.Authenticate)
	{
		bankGroup.POST("/link-token", r.bankHandler.CreateLinkToken)
		bankGroup.POST("/exchange", r.bankHandler.ExchangePublicToken)
		bankGroup.GET("/accounts", r.bankHandler.ListBankAccounts)
		bankGroup.GET("/accounts/:id/share-qr", r.bankHandler.GetShareQR)
	}
}
