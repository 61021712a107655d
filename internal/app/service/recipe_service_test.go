package service

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/app/listing"
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCache 테스트용 Cache
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.deletes = append(c.deletes, key)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func setupRecipeServiceTest(t *testing.T, cache Cache) (*gorm.DB, RecipeService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewRecipeService(repository.NewRecipeRepository(testDB), cache, time.Minute)
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func sampleInput(title string) RecipeInput {
	return RecipeInput{
		Title:    title,
		Rating:   floatPtr(3),
		Category: strPtr("국/찌개"),
		Ingredients: []IngredientInput{
			{Name: "두부", Amount: "1모"},
			{Name: "된장", Amount: "2큰술"},
		},
		Steps: []string{"물을 끓인다", "된장을 푼다"},
		Tags:  []string{"한식"},
	}
}

func TestRecipeService_CreateDerivesSlugAndOrder(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	tests := []struct {
		title string
		slug  string
	}{
		{title: "김치 볶음밥", slug: "김치-볶음밥"},
		{title: "Spicy Tofu Stew!", slug: "spicy-tofu-stew"},
		{title: "  된장찌개 (2인분)  ", slug: "된장찌개-2인분"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			recipe, err := svc.CreateRecipe(sampleInput(tt.title))
			require.NoError(t, err)
			assert.Equal(t, tt.slug, recipe.Slug)

			for i, ing := range recipe.Ingredients {
				assert.Equal(t, i, ing.Order)
			}
			for i, step := range recipe.Steps {
				assert.Equal(t, i, step.Order)
			}
		})
	}
}

func TestRecipeService_CreateNormalizesInput(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	input := RecipeInput{
		Title:      "  계란말이 ",
		CoverImage: strPtr("   "),
		Tip:        strPtr(" 약불에서 "),
		Ingredients: []IngredientInput{
			{Name: "", Amount: ""},
			{Name: "계란", Amount: "3개"},
			{Name: " ", Amount: " "},
			{Name: "소금", Amount: ""},
		},
		Steps: []string{"", "푼다", "  ", "만다"},
		Tags:  []string{" 반찬 ", "", "반찬", "간단"},
	}

	recipe, err := svc.CreateRecipe(input)
	require.NoError(t, err)

	assert.Equal(t, "계란말이", recipe.Title)
	assert.Nil(t, recipe.CoverImage)
	require.NotNil(t, recipe.Tip)
	assert.Equal(t, "약불에서", *recipe.Tip)
	assert.Equal(t, float64(3), recipe.Rating)

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "계란", recipe.Ingredients[0].Name)
	assert.Equal(t, 0, recipe.Ingredients[0].Order)
	assert.Equal(t, "소금", recipe.Ingredients[1].Name)
	assert.Equal(t, 1, recipe.Ingredients[1].Order)

	require.Len(t, recipe.Steps, 2)
	assert.Equal(t, "만다", recipe.Steps[1].Instruction)
	assert.Equal(t, 1, recipe.Steps[1].Order)

	assert.Equal(t, []string{"반찬", "간단"}, recipe.TagNames())
}

func TestRecipeService_CreateValidation(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	tests := []struct {
		name  string
		input RecipeInput
	}{
		{name: "blank title", input: RecipeInput{Title: "   "}},
		{name: "rating too high", input: RecipeInput{Title: "a", Rating: floatPtr(6)}},
		{name: "negative rating", input: RecipeInput{Title: "a", Rating: floatPtr(-1)}},
		{name: "rating below minimum", input: RecipeInput{Title: "a", Rating: floatPtr(0.5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe, err := svc.CreateRecipe(tt.input)
			assert.ErrorIs(t, err, ErrInvalidRecipe)
			assert.Nil(t, recipe)
		})
	}

	recipes, err := svc.ListRecipes()
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestRecipeService_UpdateReplacesChildren(t *testing.T) {
	testDB, svc := setupRecipeServiceTest(t, nil)

	created, err := svc.CreateRecipe(sampleInput("된장찌개"))
	require.NoError(t, err)

	input := sampleInput("청국장")
	input.Ingredients = []IngredientInput{{Name: "청국장", Amount: "200g"}}
	input.Steps = []string{"끓인다"}
	input.Tags = []string{"구수한맛"}

	updated, err := svc.UpdateRecipe(created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "청국장", updated.Slug)

	found, err := svc.GetRecipeByID(created.ID)
	require.NoError(t, err)
	require.Len(t, found.Ingredients, 1)
	assert.Equal(t, "청국장", found.Ingredients[0].Name)
	require.Len(t, found.Steps, 1)
	assert.Equal(t, []string{"구수한맛"}, found.TagNames())

	var total int64
	testDB.Table("ingredients").Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestRecipeService_NotFound(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	_, err := svc.GetRecipeByID(404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	_, err = svc.UpdateRecipe(404, sampleInput("없음"))
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(404), ErrRecipeNotFound)

	_, err = svc.GetRecipeBySlug("없음")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_DeleteThenGet(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	recipe, err := svc.CreateRecipe(sampleInput("된장찌개"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(recipe.ID))

	_, err = svc.GetRecipeByID(recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeService_GetRecipeBySlug(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	older, err := svc.CreateRecipe(sampleInput("김치 볶음밥"))
	require.NoError(t, err)
	newer, err := svc.CreateRecipe(sampleInput("김치 볶음밥"))
	require.NoError(t, err)
	require.Equal(t, older.Slug, newer.Slug)

	t.Run("raw slug", func(t *testing.T) {
		found, err := svc.GetRecipeBySlug("김치-볶음밥")
		require.NoError(t, err)
		assert.Equal(t, newer.ID, found.ID)
	})

	t.Run("percent encoded slug", func(t *testing.T) {
		found, err := svc.GetRecipeBySlug(url.PathEscape("김치-볶음밥"))
		require.NoError(t, err)
		assert.Equal(t, newer.ID, found.ID)
	})

	t.Run("malformed escape falls back to raw", func(t *testing.T) {
		_, err := svc.GetRecipeBySlug("%zz")
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})
}

func TestRecipeService_FilterAndFacets(t *testing.T) {
	_, svc := setupRecipeServiceTest(t, nil)

	stew := sampleInput("된장찌개")
	stew.Tags = []string{"한식", "간단"}
	_, err := svc.CreateRecipe(stew)
	require.NoError(t, err)

	stir := sampleInput("제육볶음")
	stir.Category = strPtr("볶음")
	stir.Rating = floatPtr(4)
	stir.Tags = []string{"매운맛"}
	_, err = svc.CreateRecipe(stir)
	require.NoError(t, err)

	filtered, err := svc.FilterRecipes(listing.Filter{Category: "국/찌개", Tag: "간단"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "된장찌개", filtered[0].Title)

	byDifficulty, err := svc.FilterRecipes(listing.Clear().WithDifficulty(4))
	require.NoError(t, err)
	require.Len(t, byDifficulty, 1)
	assert.Equal(t, "제육볶음", byDifficulty[0].Title)

	all, err := svc.FilterRecipes(listing.Clear())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	facets, err := svc.GetFacets()
	require.NoError(t, err)
	assert.Equal(t, 2, facets.Total)
	assert.Len(t, facets.Categories, 2)
	assert.Len(t, facets.Tags, 3)
}

func TestRecipeService_CacheInvalidatedOnWrite(t *testing.T) {
	cache := newMemoryCache()
	_, svc := setupRecipeServiceTest(t, cache)

	_, err := svc.ListRecipes()
	require.NoError(t, err)
	assert.True(t, cache.has(CacheKeyRecipeList))

	recipe, err := svc.CreateRecipe(sampleInput("된장찌개"))
	require.NoError(t, err)
	assert.False(t, cache.has(CacheKeyRecipeList))

	recipes, err := svc.ListRecipes()
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.True(t, cache.has(CacheKeyRecipeList))

	// 캐시에서 읽어도 하위 데이터가 유지된다
	cached, err := svc.ListRecipes()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Len(t, cached[0].Ingredients, 2)
	assert.Equal(t, []string{"한식"}, cached[0].TagNames())

	_, err = svc.UpdateRecipe(recipe.ID, sampleInput("청국장"))
	require.NoError(t, err)
	assert.False(t, cache.has(CacheKeyRecipeList))

	require.NoError(t, svc.DeleteRecipe(recipe.ID))
	assert.Contains(t, cache.deletes, CacheKeySitemap)

	recipes, err = svc.ListRecipes()
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

// pausingRepository 첫 FindAll이 결과를 읽은 뒤 resume이 닫힐 때까지 멈춘다
type pausingRepository struct {
	repository.RecipeRepository
	once   sync.Once
	loaded chan struct{}
	resume chan struct{}
}

func (r *pausingRepository) FindAll() ([]model.Recipe, error) {
	recipes, err := r.RecipeRepository.FindAll()
	r.once.Do(func() {
		close(r.loaded)
		<-r.resume
	})
	return recipes, err
}

func TestRecipeService_ConcurrentWriteDoesNotRecacheStaleList(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := &pausingRepository{
		RecipeRepository: repository.NewRecipeRepository(testDB),
		loaded:           make(chan struct{}),
		resume:           make(chan struct{}),
	}
	cache := newMemoryCache()
	svc := NewRecipeService(repo, cache, time.Hour)

	err = repo.Create(&model.Recipe{Title: "기존", Slug: "기존", Rating: 3}, nil)
	require.NoError(t, err)

	done := make(chan []model.Recipe)
	go func() {
		recipes, _ := svc.ListRecipes()
		done <- recipes
	}()

	<-repo.loaded
	_, err = svc.CreateRecipe(sampleInput("새 레시피"))
	require.NoError(t, err)
	close(repo.resume)

	stale := <-done
	assert.Len(t, stale, 1)
	assert.False(t, cache.has(CacheKeyRecipeList))

	recipes, err := svc.ListRecipes()
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	assert.True(t, cache.has(CacheKeyRecipeList))
}
