// Package listing filters an in-memory recipe list the way the public blog page does:
// category, tag and difficulty selections combined with logical AND.
package listing

import (
	"math"

	"github.com/bufgix/recipe-blog-backend/internal/app/model"
)

// Filter 선택된 조건. 빈 값(0, "")은 선택되지 않은 상태.
type Filter struct {
	Category   string
	Tag        string
	Difficulty int
}

// Clear 모든 조건 해제
func Clear() Filter {
	return Filter{}
}

func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// WithCategory 카테고리 선택 (빈 문자열이면 해제)
func (f Filter) WithCategory(category string) Filter {
	f.Category = category
	return f
}

// ToggleTag 이미 선택된 태그를 다시 고르면 해제된다
func (f Filter) ToggleTag(tag string) Filter {
	if f.Tag == tag {
		f.Tag = ""
	} else {
		f.Tag = tag
	}
	return f
}

// WithDifficulty 난이도 선택 (0이면 해제)
func (f Filter) WithDifficulty(level int) Filter {
	f.Difficulty = level
	return f
}

// DifficultyBucket 소수점 평점을 가장 가까운 1~5 정수로
func DifficultyBucket(rating float64) int {
	bucket := int(math.Round(rating))
	if bucket < model.MinRating {
		return model.MinRating
	}
	if bucket > model.MaxRating {
		return model.MaxRating
	}
	return bucket
}

func (f Filter) Matches(recipe *model.Recipe) bool {
	if f.Category != "" && recipe.CategoryName() != f.Category {
		return false
	}
	if f.Tag != "" && !recipe.HasTag(f.Tag) {
		return false
	}
	if f.Difficulty != 0 && DifficultyBucket(recipe.Rating) != f.Difficulty {
		return false
	}
	return true
}

// Apply returns the recipes matching every selected criterion, in their original order.
func Apply(recipes []model.Recipe, f Filter) []model.Recipe {
	filtered := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		if f.Matches(&recipes[i]) {
			filtered = append(filtered, recipes[i])
		}
	}
	return filtered
}

type FacetCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DifficultyCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// Facets 사이드바에 표시할 카테고리/태그별 개수
type Facets struct {
	Total        int               `json:"total"`
	Categories   []FacetCount      `json:"categories"`
	Tags         []FacetCount      `json:"tags"`
	Difficulties []DifficultyCount `json:"difficulties"`
}

// BuildFacets counts recipes per category, tag and difficulty. Categories and tags keep
// the order in which they first appear in the list; recipes without a category are skipped.
func BuildFacets(recipes []model.Recipe) Facets {
	facets := Facets{
		Total:        len(recipes),
		Categories:   []FacetCount{},
		Tags:         []FacetCount{},
		Difficulties: []DifficultyCount{},
	}

	categoryIndex := map[string]int{}
	tagIndex := map[string]int{}
	var difficultyCounts [model.MaxRating + 1]int

	for i := range recipes {
		recipe := &recipes[i]

		if category := recipe.CategoryName(); category != "" {
			if idx, ok := categoryIndex[category]; ok {
				facets.Categories[idx].Count++
			} else {
				categoryIndex[category] = len(facets.Categories)
				facets.Categories = append(facets.Categories, FacetCount{Name: category, Count: 1})
			}
		}

		counted := map[string]bool{}
		for _, name := range recipe.TagNames() {
			if counted[name] {
				continue
			}
			counted[name] = true
			if idx, ok := tagIndex[name]; ok {
				facets.Tags[idx].Count++
			} else {
				tagIndex[name] = len(facets.Tags)
				facets.Tags = append(facets.Tags, FacetCount{Name: name, Count: 1})
			}
		}

		difficultyCounts[DifficultyBucket(recipe.Rating)]++
	}

	for level := model.MinRating; level <= model.MaxRating; level++ {
		if difficultyCounts[level] > 0 {
			facets.Difficulties = append(facets.Difficulties, DifficultyCount{Level: level, Count: difficultyCounts[level]})
		}
	}

	return facets
}
