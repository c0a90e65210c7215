package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/models"
)

/* --------------------- Users -------------------- */

type createUserRequest struct {
	Nickname    string `json:"nickname" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,uri"`
	Type        string `json:"type" binding:"required"`
	CompanyID   *int64 `json:"companyId"`
	Reputation  *int   `json:"reputation" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// POST /users
func (h *handlers) createUser(c *gin.Context) {
	var req createUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	_, err := h.Users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		h.respondError(c, apperrors.Validation("User already exists"))
		return
	case !errors.Is(err, models.ErrNotFound):
		h.respondError(c, apperrors.Internal("Could not check user.", err))
		return
	}

	u := models.User{
		Nickname:    req.Nickname,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
		Type:        req.Type,
		CompanyID:   req.CompanyID,
		Reputation:  *req.Reputation,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			// lost a race with a concurrent signup for the same email
			h.respondError(c, apperrors.Validation("User already exists"))
			return
		}
		h.respondError(c, apperrors.Internal("Could not save user.", err))
		return
	}
	c.JSON(http.StatusCreated, u)
}

/* ------------------- Categories ------------------ */

type createCategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	ImageURL      string `json:"imageUrl" binding:"omitempty,uri"`
	Priority      *int   `json:"priority" binding:"required"`
	SubCategories string `json:"subCategories" binding:"required"`
}

// POST /category
func (h *handlers) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	cat := models.Category{
		Name:          req.Name,
		ImageURL:      req.ImageURL,
		Priority:      *req.Priority,
		SubCategories: req.SubCategories,
	}
	if err := h.Categories.Create(c.Request.Context(), &cat); err != nil {
		h.respondError(c, apperrors.Internal("Could not save category.", err))
		return
	}
	c.JSON(http.StatusCreated, cat)
}
