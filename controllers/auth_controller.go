package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storefront-backend/apperrors"
	"storefront-backend/models"
	"storefront-backend/services"
	"storefront-backend/store"
)

// AuthController handles the session: login, registration, logout, and the
// two-step password recovery flow.
type AuthController struct {
	store    *store.Store
	recovery *services.RecoveryService
	validate *validator.Validate
}

func NewAuthController(st *store.Store, recovery *services.RecoveryService) *AuthController {
	return &AuthController{
		store:    st,
		recovery: recovery,
		validate: validator.New(),
	}
}

// sanitize strips the plaintext password before a user leaves the API.
func sanitize(u models.User) models.User {
	u.Password = ""
	return u
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates against a fresh fetch of the user collection. On a
// failed match the caller learns only that the credentials were wrong.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	if err := ac.validate.Struct(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	user, ok := ac.store.Login(c.Request.Context(), req.Email, req.Password)
	if !ok {
		respondError(c, apperrors.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sanitize(user)})
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a shopper account. The role is always shopper no matter
// what the payload claims.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	if err := ac.validate.Struct(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	user, res := ac.store.Register(c.Request.Context(), models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})

	body := resultFields(res)
	body["user"] = sanitize(user)
	c.JSON(http.StatusCreated, body)
}

// Logout drops the session. Carts survive a logout.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.store.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the session user.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := ac.store.CurrentUser()
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sanitize(user)})
}

// BeginRecovery issues a reset code for a known email.
func (ac *AuthController) BeginRecovery(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, apperrors.New(http.StatusBadRequest, "email is required", err))
		return
	}
	if err := ac.recovery.Begin(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recovery code sent"})
}

// CompleteRecovery verifies the code and sets the new password.
func (ac *AuthController) CompleteRecovery(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	if err := ac.recovery.Complete(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
