package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auxfresh/receipt-generator/internal/cqrs"
	"github.com/auxfresh/receipt-generator/internal/middleware"
	"github.com/auxfresh/receipt-generator/internal/models"
)

// UserCreator creates accounts on the write side.
type UserCreator interface {
	Signup(cqrs.SignupCommand) (*models.User, error)
}

// Authenticator issues, refreshes and revokes session tokens.
type Authenticator interface {
	Login(cqrs.LoginCommand) (string, error)
	RefreshToken(cqrs.RefreshTokenCommand) (string, error)
	Logout(cqrs.LogoutCommand) error
}

type AuthHandler struct {
	users UserCreator
	auth  Authenticator
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(users UserCreator, auth Authenticator) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(&req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Signup(cqrs.SignupCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if err.Error() == "email already exists" {
			middleware.RespondWithError(c, http.StatusConflict, "Email already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, models.UserView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(&req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.auth.Login(cqrs.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing or invalid authorization header")
		return
	}

	refreshed, err := h.auth.RefreshToken(cqrs.RefreshTokenCommand{Token: token})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: refreshed})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing or invalid authorization header")
		return
	}

	if err := h.auth.Logout(cqrs.LogoutCommand{Token: token}); err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	c.Status(http.StatusNoContent)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
