package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bufgix/recipe-blog-backend/internal/app/listing"
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	apperrors "github.com/bufgix/recipe-blog-backend/internal/errors"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	recipeService service.RecipeService
}

func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
	}
}

type IngredientRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// RecipeRequest 생성/수정 공통 요청. steps와 tags는 문자열 배열이다.
type RecipeRequest struct {
	Title       string              `json:"title"`
	CoverImage  *string             `json:"cover_image"`
	Rating      *float64            `json:"rating"`
	Category    *string             `json:"category"`
	Tip         *string             `json:"tip"`
	Notes       *string             `json:"notes"` // tip의 이전 이름
	Ingredients []IngredientRequest `json:"ingredients"`
	Steps       []string            `json:"steps"`
	Tags        []string            `json:"tags"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	input := service.RecipeInput{
		Title:       r.Title,
		CoverImage:  r.CoverImage,
		Rating:      r.Rating,
		Category:    r.Category,
		Tip:         r.Tip,
		Ingredients: make([]service.IngredientInput, 0, len(r.Ingredients)),
		Steps:       r.Steps,
		Tags:        r.Tags,
	}
	if input.Tip == nil {
		input.Tip = r.Notes
	}
	for _, ing := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.IngredientInput{Name: ing.Name, Amount: ing.Amount})
	}
	return input
}

// ListRecipes returns recipes newest first, narrowed by optional filters
// GET /api/v1/recipes?category=&tag=&difficulty=
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := listing.Clear().
		WithCategory(strings.TrimSpace(c.Query("category"))).
		ToggleTag(strings.TrimSpace(c.Query("tag")))

	if raw := c.Query("difficulty"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < model.MinRating || level > model.MaxRating {
			log.Warn("Invalid difficulty filter", map[string]interface{}{
				"difficulty": raw,
			})
			apperrors.BadRequest(c, apperrors.RecipeInvalidFilter, "난이도는 1~5 사이의 정수여야 합니다")
			return
		}
		filter = filter.WithDifficulty(level)
	}

	recipes, err := ctrl.recipeService.FilterRecipes(filter)
	if err != nil {
		log.Error("Failed to fetch recipes", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list recipes")
		return
	}

	log.Info("Recipes fetched successfully", map[string]interface{}{
		"count":      len(recipes),
		"category":   filter.Category,
		"tag":        filter.Tag,
		"difficulty": filter.Difficulty,
	})

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// GetFacets returns per-category, per-tag and per-difficulty counts
// GET /api/v1/recipes/facets
func (ctrl *RecipeController) GetFacets(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	facets, err := ctrl.recipeService.GetFacets()
	if err != nil {
		log.Error("Failed to build recipe facets", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list recipes")
		return
	}

	c.JSON(http.StatusOK, facets)
}

// GetRecipeByID returns a recipe by ID
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipeByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := ctrl.recipeService.GetRecipeByID(id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "레시피를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// GetRecipeBySlug returns the newest recipe with the given slug
// GET /api/v1/recipes/slug/:slug
func (ctrl *RecipeController) GetRecipeBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	slug := c.Param("slug")
	recipe, err := ctrl.recipeService.GetRecipeBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "레시피를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch recipe by slug", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// CreateRecipe creates a new recipe
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecipe) {
			respondInvalidRecipe(c, err)
			return
		}
		log.Error("Failed to create recipe", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create recipe")
		return
	}

	log.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"slug":      recipe.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "레시피가 등록되었습니다",
		"recipe":  recipe,
	})
}

// UpdateRecipe replaces a recipe together with its ingredients, steps and tags
// PUT /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe update request", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	recipe, err := ctrl.recipeService.UpdateRecipe(id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "레시피를 찾을 수 없습니다")
		case errors.Is(err, service.ErrInvalidRecipe):
			respondInvalidRecipe(c, err)
		default:
			log.Error("Failed to update recipe", err, map[string]interface{}{
				"recipe_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update recipe")
		}
		return
	}

	log.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "레시피가 수정되었습니다",
		"recipe":  recipe,
	})
}

// DeleteRecipe deletes a recipe and its children
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := ctrl.recipeService.DeleteRecipe(id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "레시피를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete recipe")
		return
	}

	log.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "레시피가 삭제되었습니다",
	})
}

func parseRecipeID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid recipe ID format", map[string]interface{}{
			"recipe_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 레시피 ID입니다")
		return 0, false
	}
	return uint(id), true
}

// respondInvalidRecipe 검증 메시지는 "invalid recipe: <한글 메시지>" 형태
func respondInvalidRecipe(c *gin.Context, err error) {
	message := strings.TrimPrefix(err.Error(), service.ErrInvalidRecipe.Error()+": ")
	code := apperrors.ValidationInvalidInput
	if strings.Contains(message, "난이도") {
		code = apperrors.RecipeInvalidRating
	}
	apperrors.BadRequest(c, code, message)
}
