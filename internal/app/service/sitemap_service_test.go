package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSitemapTest(t *testing.T, cache Cache) (RecipeService, *sitemapService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	recipeRepo := repository.NewRecipeRepository(testDB)
	sitemap := NewSitemapService(recipeRepo, "https://example.com/", cache, time.Minute).(*sitemapService)
	sitemap.now = func() time.Time {
		return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	}
	return NewRecipeService(recipeRepo, cache, time.Minute), sitemap
}

func TestSitemapService_Build(t *testing.T) {
	recipes, sitemap := setupSitemapTest(t, nil)

	recipe, err := recipes.CreateRecipe(sampleInput("김치 볶음밥"))
	require.NoError(t, err)

	entries, err := sitemap.Build()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, SitemapEntry{Loc: "https://example.com", LastMod: "2024-05-01T09:00:00Z", ChangeFrequency: "daily", Priority: 1.0}, entries[0])
	assert.Equal(t, "https://example.com/blog", entries[1].Loc)
	assert.Equal(t, 0.9, entries[1].Priority)
	assert.Equal(t, "https://example.com/about", entries[2].Loc)
	assert.Equal(t, "monthly", entries[2].ChangeFrequency)

	assert.Equal(t, "https://example.com/recipes/%EA%B9%80%EC%B9%98-%EB%B3%B6%EC%9D%8C%EB%B0%A5", entries[3].Loc)
	assert.Equal(t, recipe.CreatedAt.UTC().Format(time.RFC3339), entries[3].LastMod)
	assert.Equal(t, 0.8, entries[3].Priority)
}

func TestSitemapService_RenderXML(t *testing.T) {
	_, sitemap := setupSitemapTest(t, nil)

	out, err := sitemap.RenderXML()
	require.NoError(t, err)

	body := string(out)
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>https://example.com/about</loc>")
	assert.Contains(t, body, "<changefreq>daily</changefreq>")
}

func TestSitemapService_UsesCacheUntilInvalidated(t *testing.T) {
	cache := newMemoryCache()
	recipes, sitemap := setupSitemapTest(t, cache)

	first, err := sitemap.RenderXML()
	require.NoError(t, err)
	assert.True(t, cache.has(CacheKeySitemap))

	require.NoError(t, cache.Set(context.Background(), CacheKeySitemap, "cached", time.Minute))
	cached, err := sitemap.RenderXML()
	require.NoError(t, err)
	assert.Equal(t, "cached", string(cached))

	refreshed, err := sitemap.Refresh()
	require.NoError(t, err)
	assert.Equal(t, first, refreshed)

	_, err = recipes.CreateRecipe(sampleInput("된장찌개"))
	require.NoError(t, err)
	withRecipe, err := sitemap.RenderXML()
	require.NoError(t, err)
	assert.Contains(t, string(withRecipe), "/recipes/")
}
