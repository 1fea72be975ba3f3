package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriesResponse wraps the category catalog.
type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// GetCategories handles listing the category catalog.
// @Summary     List categories
// @Description Return the fixed category set in display order
// @Tags        categories
// @Produce     json
// @Success     200 {object} CategoriesResponse "Categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	cats, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoriesResponse{Categories: cats})
}
