// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lbank/config"
	"lbank/internal/delivery/http/middleware"
	"lbank/internal/delivery/http/response"
	"lbank/internal/domain/entity"
	"lbank/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc         usecase.UserUsecase
	logger     *slog.Logger
	cookieName string
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{
		uc:         uc,
		logger:     logger,
		cookieName: cfg.Session.CookieName,
	}
}

type registerRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Address1    string `json:"address1" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required,len=2"`
	PostalCode  string `json:"postalCode" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	SSN         string `json:"ssn" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the safe projection of a user. The SSN and date of birth
// never leave the server once stored.
type userResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address1   string `json:"address1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

func toUserResponse(user *entity.User) *userResponse {
	resp := &userResponse{
		ID:        user.ID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
	if user.Profile != nil {
		resp.Address1 = user.Profile.Address1
		resp.City = user.Profile.City
		resp.State = user.Profile.State
		resp.PostalCode = user.Profile.PostalCode
	}

	return resp
}

// Register handles the user registration request and opens a session.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Address1:    input.Address1,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		DateOfBirth: input.DateOfBirth,
		SSN:         input.SSN,
		Email:       input.Email,
		Password:    input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.SessionSecret, output.SessionExpiresAt)

	return response.Success(c, http.StatusCreated, toUserResponse(output.User), "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.SessionSecret, output.SessionExpiresAt)

	return response.Success(c, http.StatusOK, toUserResponse(output.User), "Login successful")
}

// Logout deletes the server-side session and expires the cookie.
func (h *UserHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	h.expireSessionCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// setSessionCookie writes the raw session secret into a hardened cookie.
// The secret is never included in a JSON body.
func (h *UserHandler) setSessionCookie(c echo.Context, secret string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    secret,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *UserHandler) expireSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
