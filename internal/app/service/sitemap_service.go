package service

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapEntry struct {
	Loc             string  `xml:"loc"`
	LastMod         string  `xml:"lastmod"`
	ChangeFrequency string  `xml:"changefreq"`
	Priority        float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name       `xml:"urlset"`
	Xmlns   string         `xml:"xmlns,attr"`
	URLs    []SitemapEntry `xml:"url"`
}

type SitemapService interface {
	Build() ([]SitemapEntry, error)
	// RenderXML 캐시된 XML이 있으면 그대로 돌려준다
	RenderXML() ([]byte, error)
	// Refresh 캐시를 무시하고 다시 생성해 저장
	Refresh() ([]byte, error)
}

type sitemapService struct {
	recipeRepo repository.RecipeRepository
	baseURL    string
	cache      Cache
	cacheTTL   time.Duration
	now        func() time.Time
}

func NewSitemapService(recipeRepo repository.RecipeRepository, baseURL string, cache Cache, cacheTTL time.Duration) SitemapService {
	return &sitemapService{
		recipeRepo: recipeRepo,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache,
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

// Build 고정 페이지 3개 + 레시피별 상세 페이지
func (s *sitemapService) Build() ([]SitemapEntry, error) {
	recipes, err := s.recipeRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load recipes for sitemap", err)
		return nil, err
	}

	now := formatLastMod(s.now())
	entries := []SitemapEntry{
		{Loc: s.baseURL, LastMod: now, ChangeFrequency: "daily", Priority: 1.0},
		{Loc: s.baseURL + "/blog", LastMod: now, ChangeFrequency: "daily", Priority: 0.9},
		{Loc: s.baseURL + "/about", LastMod: now, ChangeFrequency: "monthly", Priority: 0.5},
	}

	for _, recipe := range recipes {
		entries = append(entries, SitemapEntry{
			Loc:             s.baseURL + "/recipes/" + url.PathEscape(recipe.Slug),
			LastMod:         formatLastMod(recipe.CreatedAt),
			ChangeFrequency: "monthly",
			Priority:        0.8,
		})
	}
	return entries, nil
}

func (s *sitemapService) RenderXML() ([]byte, error) {
	var cached string
	if cacheGet(s.cache, CacheKeySitemap, &cached) {
		return []byte(cached), nil
	}
	return s.Refresh()
}

func (s *sitemapService) Refresh() ([]byte, error) {
	entries, err := s.Build()
	if err != nil {
		return nil, err
	}

	body, err := xml.MarshalIndent(urlSet{Xmlns: sitemapNamespace, URLs: entries}, "", "  ")
	if err != nil {
		logger.Error("Failed to encode sitemap", err)
		return nil, err
	}
	out := append([]byte(xml.Header), body...)

	cacheSet(s.cache, CacheKeySitemap, string(out), s.cacheTTL)

	logger.Info("Sitemap generated", map[string]interface{}{
		"urls": len(entries),
	})
	return out, nil
}

func formatLastMod(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
