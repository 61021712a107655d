package form

import (
	"strings"

	"github.com/bufgix/recipe-blog-backend/internal/app/model"
)

// Action 초안 하나를 받아 새 초안을 돌려주는 편집 동작
type Action interface {
	apply(d Draft) Draft
}

// Reduce applies the actions in order and returns the resulting draft. d itself is left untouched.
func Reduce(d Draft, actions ...Action) Draft {
	next := d.clone()
	for _, action := range actions {
		next = action.apply(next)
	}
	return next
}

type actionFunc func(d Draft) Draft

func (f actionFunc) apply(d Draft) Draft {
	return f(d)
}

func SetTitle(title string) Action {
	return actionFunc(func(d Draft) Draft {
		d.Title = title
		return d
	})
}

func SetCoverImage(url string) Action {
	return actionFunc(func(d Draft) Draft {
		d.CoverImage = url
		return d
	})
}

func SetDifficulty(level float64) Action {
	return actionFunc(func(d Draft) Draft {
		d.Difficulty = level
		return d
	})
}

func SetCategory(category string) Action {
	return actionFunc(func(d Draft) Draft {
		d.Category = category
		return d
	})
}

func SetTip(tip string) Action {
	return actionFunc(func(d Draft) Draft {
		d.Tip = tip
		return d
	})
}

// AddIngredient 맨 끝에 빈 재료 행 추가
func AddIngredient() Action {
	return actionFunc(func(d Draft) Draft {
		d.Ingredients = append(d.Ingredients, IngredientRow{})
		return d
	})
}

// RemoveIngredient 범위를 벗어난 index는 무시
func RemoveIngredient(index int) Action {
	return actionFunc(func(d Draft) Draft {
		if index < 0 || index >= len(d.Ingredients) {
			return d
		}
		d.Ingredients = append(d.Ingredients[:index], d.Ingredients[index+1:]...)
		return d
	})
}

func UpdateIngredient(index int, name, amount string) Action {
	return actionFunc(func(d Draft) Draft {
		if index < 0 || index >= len(d.Ingredients) {
			return d
		}
		d.Ingredients[index] = IngredientRow{Name: name, Amount: amount}
		return d
	})
}

func AddStep() Action {
	return actionFunc(func(d Draft) Draft {
		d.Steps = append(d.Steps, "")
		return d
	})
}

func RemoveStep(index int) Action {
	return actionFunc(func(d Draft) Draft {
		if index < 0 || index >= len(d.Steps) {
			return d
		}
		d.Steps = append(d.Steps[:index], d.Steps[index+1:]...)
		return d
	})
}

func UpdateStep(index int, instruction string) Action {
	return actionFunc(func(d Draft) Draft {
		if index < 0 || index >= len(d.Steps) {
			return d
		}
		d.Steps[index] = instruction
		return d
	})
}

// AddTag 앞뒤 공백 제거. 빈 태그나 이미 있는 태그는 무시
func AddTag(tag string) Action {
	return actionFunc(func(d Draft) Draft {
		name := strings.TrimSpace(tag)
		if name == "" {
			return d
		}
		for _, existing := range d.Tags {
			if existing == name {
				return d
			}
		}
		d.Tags = append(d.Tags, name)
		return d
	})
}

func RemoveTag(tag string) Action {
	return actionFunc(func(d Draft) Draft {
		tags := make([]string, 0, len(d.Tags))
		for _, existing := range d.Tags {
			if existing != tag {
				tags = append(tags, existing)
			}
		}
		d.Tags = tags
		return d
	})
}

// Load 저장된 레시피로 초안 전체를 교체
func Load(recipe *model.Recipe) Action {
	return actionFunc(func(Draft) Draft {
		return FromRecipe(recipe)
	})
}
