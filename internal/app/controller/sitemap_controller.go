package controller

import (
	"net/http"

	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	apperrors "github.com/bufgix/recipe-blog-backend/internal/errors"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SitemapController struct {
	sitemapService service.SitemapService
}

func NewSitemapController(sitemapService service.SitemapService) *SitemapController {
	return &SitemapController{
		sitemapService: sitemapService,
	}
}

// GetSitemap renders sitemap.xml
// GET /sitemap.xml
func (ctrl *SitemapController) GetSitemap(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	body, err := ctrl.sitemapService.RenderXML()
	if err != nil {
		log.Error("Failed to render sitemap", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
