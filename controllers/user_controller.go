package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storefront-backend/apperrors"
	"storefront-backend/models"
	"storefront-backend/store"
)

// UserController is the back-office user management surface plus the
// shopper wishlist toggle.
type UserController struct {
	store    *store.Store
	validate *validator.Validate
}

func NewUserController(st *store.Store) *UserController {
	return &UserController{store: st, validate: validator.New()}
}

// GetUsers lists all accounts with passwords stripped.
func (uc *UserController) GetUsers(c *gin.Context) {
	users := uc.store.Users()
	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUserRequest is the back-office account creation payload. Unlike
// self-registration, any role can be assigned here.
type CreateUserRequest struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required"`
	Permissions []string `json:"permissions"`
}

// CreateUser adds an account with an explicit role.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	if err := uc.validate.Struct(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	user, res, err := uc.store.AddUser(c.Request.Context(), models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.Role(req.Role),
		Permissions: req.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	body := resultFields(res)
	body["user"] = sanitize(user)
	c.JSON(http.StatusCreated, body)
}

// UpdateUser applies a partial edit to an account.
func (uc *UserController) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	res, err := uc.store.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultFields(res))
}

// DeleteUser removes an account. Admin accounts are refused.
func (uc *UserController) DeleteUser(c *gin.Context) {
	res, err := uc.store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultFields(res))
}

// ToggleWishlist flips a product's presence in the session user's wishlist.
func (uc *UserController) ToggleWishlist(c *gin.Context) {
	user, ok := uc.store.CurrentUser()
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	productID := c.Param("productId")
	if _, found := uc.store.Product(productID); !found {
		respondError(c, store.ErrNotFound)
		return
	}

	res, err := uc.store.ToggleWishlist(c.Request.Context(), user.ID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := resultFields(res)
	if u, stillThere := uc.store.CurrentUser(); stillThere {
		body["wishlist"] = u.Wishlist
	}
	c.JSON(http.StatusOK, body)
}
