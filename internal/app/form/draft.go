// Package form holds the editable state of the recipe editor. A Draft is a value: every edit
// goes through Reduce and produces a new Draft, the previous one is never modified.
package form

import (
	"strings"

	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
)

type IngredientRow struct {
	Name   string
	Amount string
}

// Draft 작성/수정 중인 레시피. RecipeID가 0이면 새 레시피.
type Draft struct {
	RecipeID    uint
	Title       string
	CoverImage  string
	Difficulty  float64
	Category    string
	Ingredients []IngredientRow
	Steps       []string
	Tags        []string
	Tip         string
}

// NewDraft 빈 재료 행과 빈 조리 과정 행 하나씩, 난이도 3
func NewDraft() Draft {
	return Draft{
		Difficulty:  model.DefaultRating,
		Ingredients: []IngredientRow{{}},
		Steps:       []string{""},
		Tags:        []string{},
	}
}

// FromRecipe 수정 화면용 초안. 재료/조리 과정이 비어 있으면 빈 행 하나를 둔다.
func FromRecipe(recipe *model.Recipe) Draft {
	d := Draft{
		RecipeID:    recipe.ID,
		Title:       recipe.Title,
		Difficulty:  recipe.Rating,
		Category:    recipe.CategoryName(),
		Ingredients: make([]IngredientRow, 0, len(recipe.Ingredients)),
		Steps:       make([]string, 0, len(recipe.Steps)),
		Tags:        recipe.TagNames(),
	}
	if recipe.CoverImage != nil {
		d.CoverImage = *recipe.CoverImage
	}
	if recipe.Tip != nil {
		d.Tip = *recipe.Tip
	}
	for _, ing := range recipe.Ingredients {
		d.Ingredients = append(d.Ingredients, IngredientRow{Name: ing.Name, Amount: ing.Amount})
	}
	for _, step := range recipe.Steps {
		d.Steps = append(d.Steps, step.Instruction)
	}
	if len(d.Ingredients) == 0 {
		d.Ingredients = append(d.Ingredients, IngredientRow{})
	}
	if len(d.Steps) == 0 {
		d.Steps = append(d.Steps, "")
	}
	return d
}

func (d Draft) IsEdit() bool {
	return d.RecipeID != 0
}

// clone 슬라이스까지 복사해 원본과 공유하지 않는 사본
func (d Draft) clone() Draft {
	d.Ingredients = append([]IngredientRow(nil), d.Ingredients...)
	d.Steps = append([]string(nil), d.Steps...)
	d.Tags = append([]string{}, d.Tags...)
	return d
}

// Input 이름이나 수량이 빠진 재료와 빈 조리 과정을 제외한 저장 요청
func (d Draft) Input() service.RecipeInput {
	input := service.RecipeInput{
		Title:       d.Title,
		Rating:      floatPtr(d.Difficulty),
		Ingredients: make([]service.IngredientInput, 0, len(d.Ingredients)),
		Steps:       make([]string, 0, len(d.Steps)),
		Tags:        append([]string{}, d.Tags...),
	}
	if d.CoverImage != "" {
		input.CoverImage = stringPtr(d.CoverImage)
	}
	if d.Category != "" {
		input.Category = stringPtr(d.Category)
	}
	if d.Tip != "" {
		input.Tip = stringPtr(d.Tip)
	}

	for _, row := range d.Ingredients {
		name := strings.TrimSpace(row.Name)
		amount := strings.TrimSpace(row.Amount)
		if name == "" || amount == "" {
			continue
		}
		input.Ingredients = append(input.Ingredients, service.IngredientInput{Name: name, Amount: amount})
	}
	for _, step := range d.Steps {
		if strings.TrimSpace(step) == "" {
			continue
		}
		input.Steps = append(input.Steps, step)
	}
	return input
}

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
