package router

import (
	"net/http"

	"github.com/bufgix/recipe-blog-backend/config"
	"github.com/bufgix/recipe-blog-backend/internal/app/controller"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	recipeController   *controller.RecipeController
	tagController      *controller.TagController
	categoryController *controller.CategoryController
	uploadController   *controller.UploadController
	sitemapController  *controller.SitemapController
	config             *config.Config
}

func NewRouter(
	recipeController *controller.RecipeController,
	tagController *controller.TagController,
	categoryController *controller.CategoryController,
	uploadController *controller.UploadController,
	sitemapController *controller.SitemapController,
	cfg *config.Config,
) *Router {
	return &Router{
		recipeController:   recipeController,
		tagController:      tagController,
		categoryController: categoryController,
		uploadController:   uploadController,
		sitemapController:  sitemapController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	// 업로드 본문은 컨트롤러에서 다시 제한하지만 multipart 파싱 메모리도 묶어 둔다
	router.MaxMultipartMemory = r.config.Upload.MaxBytes

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Recipe Blog API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/sitemap.xml", r.sitemapController.GetSitemap)

	// S3를 쓰지 않을 때는 로컬 업로드 디렉터리를 직접 제공
	if !r.config.S3.Enabled() {
		router.Static("/uploads", r.config.Upload.Dir)
	}

	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.recipeController.ListRecipes)
			recipes.POST("", r.recipeController.CreateRecipe)
			recipes.GET("/facets", r.recipeController.GetFacets)
			recipes.GET("/slug/:slug", r.recipeController.GetRecipeBySlug)
			recipes.GET("/:id", r.recipeController.GetRecipeByID)
			recipes.PUT("/:id", r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.recipeController.DeleteRecipe)
		}

		v1.GET("/tags", r.tagController.ListTags)
		v1.GET("/categories", r.categoryController.ListCategories)
		v1.POST("/upload", r.uploadController.UploadImage)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
