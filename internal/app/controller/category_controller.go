package controller

import (
	"net/http"

	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	apperrors "github.com/bufgix/recipe-blog-backend/internal/errors"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// ListCategories returns categories in display order
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}
