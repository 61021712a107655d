package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/app/listing"
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"github.com/bufgix/recipe-blog-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRecipe  = errors.New("invalid recipe")
)

type IngredientInput struct {
	Name   string
	Amount string
}

// RecipeInput 생성/수정 요청 데이터. 재료와 조리 과정은 배열 순서가 곧 표시 순서다.
type RecipeInput struct {
	Title       string
	CoverImage  *string
	Rating      *float64
	Category    *string
	Tip         *string
	Ingredients []IngredientInput
	Steps       []string
	Tags        []string
}

type RecipeService interface {
	ListRecipes() ([]model.Recipe, error)
	FilterRecipes(filter listing.Filter) ([]model.Recipe, error)
	GetFacets() (listing.Facets, error)
	GetRecipeByID(id uint) (*model.Recipe, error)
	GetRecipeBySlug(slug string) (*model.Recipe, error)
	CreateRecipe(input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(id uint, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(id uint) error
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	cache      Cache
	cacheTTL   time.Duration
	// writes 쓰기마다 증가. 조회 도중 쓰기가 있었으면 그 목록은 캐시하지 않는다.
	writes  atomic.Uint64
	cacheMu sync.Mutex
}

// NewRecipeService cache는 nil이어도 된다
func NewRecipeService(recipeRepo repository.RecipeRepository, cache Cache, cacheTTL time.Duration) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// ListRecipes 최신순 전체 목록 (하위 데이터 포함)
func (s *recipeService) ListRecipes() ([]model.Recipe, error) {
	var cached []model.Recipe
	if cacheGet(s.cache, CacheKeyRecipeList, &cached) {
		logger.Debug("Recipe list served from cache", map[string]interface{}{
			"count": len(cached),
		})
		return cached, nil
	}

	seen := s.writes.Load()
	recipes, err := s.recipeRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list recipes", err)
		return nil, err
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}

	s.cacheMu.Lock()
	if s.writes.Load() == seen {
		cacheSet(s.cache, CacheKeyRecipeList, recipes, s.cacheTTL)
	} else {
		logger.Debug("Recipe list changed during read, skipping cache", nil)
	}
	s.cacheMu.Unlock()

	logger.Info("Recipes listed", map[string]interface{}{
		"count": len(recipes),
	})
	return recipes, nil
}

func (s *recipeService) FilterRecipes(filter listing.Filter) ([]model.Recipe, error) {
	recipes, err := s.ListRecipes()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return recipes, nil
	}

	filtered := listing.Apply(recipes, filter)
	logger.Debug("Recipes filtered", map[string]interface{}{
		"category":   filter.Category,
		"tag":        filter.Tag,
		"difficulty": filter.Difficulty,
		"total":      len(recipes),
		"matched":    len(filtered),
	})
	return filtered, nil
}

func (s *recipeService) GetFacets() (listing.Facets, error) {
	recipes, err := s.ListRecipes()
	if err != nil {
		return listing.Facets{}, err
	}
	return listing.BuildFacets(recipes), nil
}

func (s *recipeService) GetRecipeByID(id uint) (*model.Recipe, error) {
	logger.Debug("Fetching recipe by ID", map[string]interface{}{
		"recipe_id": id,
	})

	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Recipe not found", map[string]interface{}{
				"recipe_id": id,
			})
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return recipe, nil
}

// GetRecipeBySlug 퍼센트 인코딩을 풀고 전체 목록에서 순차 탐색한다.
// slug는 유일하지 않으므로 최신 레시피가 우선한다.
func (s *recipeService) GetRecipeBySlug(slug string) (*model.Recipe, error) {
	decoded, err := url.PathUnescape(slug)
	if err != nil {
		decoded = slug
	}

	recipes, err := s.ListRecipes()
	if err != nil {
		return nil, err
	}

	for i := range recipes {
		if recipes[i].Slug == decoded {
			return &recipes[i], nil
		}
	}

	logger.Warn("Recipe not found by slug", map[string]interface{}{
		"slug": decoded,
	})
	return nil, ErrRecipeNotFound
}

func (s *recipeService) CreateRecipe(input RecipeInput) (*model.Recipe, error) {
	normalized, err := normalizeInput(input)
	if err != nil {
		logger.Warn("Invalid recipe input", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	recipe := buildRecipe(normalized)

	logger.Info("Creating new recipe", map[string]interface{}{
		"title":    recipe.Title,
		"slug":     recipe.Slug,
		"category": recipe.Category,
	})

	if err := s.recipeRepo.Create(recipe, normalized.Tags); err != nil {
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"title": recipe.Title,
		})
		return nil, err
	}

	s.invalidate()

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"slug":      recipe.Slug,
	})
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(id uint, input RecipeInput) (*model.Recipe, error) {
	normalized, err := normalizeInput(input)
	if err != nil {
		logger.Warn("Invalid recipe input", map[string]interface{}{
			"recipe_id": id,
			"error":     err.Error(),
		})
		return nil, err
	}

	recipe := buildRecipe(normalized)
	recipe.ID = id

	logger.Info("Updating recipe", map[string]interface{}{
		"recipe_id": id,
		"title":     recipe.Title,
		"slug":      recipe.Slug,
	})

	if err := s.recipeRepo.Replace(recipe, normalized.Tags); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: recipe not found", map[string]interface{}{
				"recipe_id": id,
			})
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}

	s.invalidate()

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"slug":      recipe.Slug,
	})
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(id uint) error {
	logger.Info("Deleting recipe", map[string]interface{}{
		"recipe_id": id,
	})

	if err := s.recipeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: recipe not found", map[string]interface{}{
				"recipe_id": id,
			})
			return ErrRecipeNotFound
		}
		logger.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return err
	}

	s.invalidate()

	logger.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}

// invalidate 쓰기 직후 호출. 카운터를 먼저 올려 진행 중인 조회가 옛 목록을 다시 캐시하지 못하게 한다.
// 다른 프로세스(시드 명령)의 조회와는 조정하지 않으므로 그 경우는 TTL에 맡긴다.
func (s *recipeService) invalidate() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.writes.Add(1)
	cacheInvalidate(s.cache, CacheKeyRecipeList, CacheKeySitemap)
}

// normalizeInput 공백 정리, 기본값 적용, 검증.
// 이름과 수량이 모두 빈 재료 행, 빈 조리 과정, 빈/중복 태그는 버린다.
func normalizeInput(input RecipeInput) (RecipeInput, error) {
	out := RecipeInput{
		Title:      strings.TrimSpace(input.Title),
		CoverImage: optionalString(input.CoverImage),
		Category:   optionalString(input.Category),
		Tip:        optionalString(input.Tip),
	}

	if out.Title == "" {
		return RecipeInput{}, fmt.Errorf("%w: 제목은 필수 항목입니다", ErrInvalidRecipe)
	}

	rating := float64(model.DefaultRating)
	if input.Rating != nil && *input.Rating != 0 {
		rating = *input.Rating
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return RecipeInput{}, fmt.Errorf("%w: 난이도는 %d~%d 사이여야 합니다", ErrInvalidRecipe, model.MinRating, model.MaxRating)
	}
	out.Rating = &rating

	out.Ingredients = make([]IngredientInput, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		name := strings.TrimSpace(ing.Name)
		amount := strings.TrimSpace(ing.Amount)
		if name == "" && amount == "" {
			continue
		}
		out.Ingredients = append(out.Ingredients, IngredientInput{Name: name, Amount: amount})
	}

	out.Steps = make([]string, 0, len(input.Steps))
	for _, step := range input.Steps {
		if instruction := strings.TrimSpace(step); instruction != "" {
			out.Steps = append(out.Steps, instruction)
		}
	}

	out.Tags = make([]string, 0, len(input.Tags))
	seen := map[string]bool{}
	for _, tag := range input.Tags {
		name := strings.TrimSpace(tag)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out.Tags = append(out.Tags, name)
	}

	return out, nil
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// buildRecipe 배열 인덱스를 order로 사용
func buildRecipe(input RecipeInput) *model.Recipe {
	recipe := &model.Recipe{
		Title:       input.Title,
		Slug:        util.Slugify(input.Title),
		CoverImage:  input.CoverImage,
		Rating:      *input.Rating,
		Category:    input.Category,
		Tip:         input.Tip,
		Ingredients: make([]model.Ingredient, 0, len(input.Ingredients)),
		Steps:       make([]model.Step, 0, len(input.Steps)),
	}

	for i, ing := range input.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Order:  i,
		})
	}
	for i, instruction := range input.Steps {
		recipe.Steps = append(recipe.Steps, model.Step{
			Instruction: instruction,
			Order:       i,
		})
	}
	return recipe
}
