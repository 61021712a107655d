package controller

import (
	"net/http"

	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	apperrors "github.com/bufgix/recipe-blog-backend/internal/errors"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{
		tagService: tagService,
	}
}

// ListTags returns every tag sorted by name
// GET /api/v1/tags
func (ctrl *TagController) ListTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.ListTags()
	if err != nil {
		log.Error("Failed to fetch tags", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}
