package repository

import (
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepository interface {
	Create(recipe *model.Recipe, tagNames []string) error
	FindAll() ([]model.Recipe, error)
	FindByID(id uint) (*model.Recipe, error)
	Replace(recipe *model.Recipe, tagNames []string) error
	Delete(id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// withChildren 재료/조리 과정은 order 오름차순으로 함께 로드
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_tags.created_at ASC, recipe_tags.tag_id ASC")
		}).
		Preload("Tags.Tag")
}

func (r *recipeRepository) Create(recipe *model.Recipe, tagNames []string) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"title":       recipe.Title,
		"slug":        recipe.Slug,
		"ingredients": len(recipe.Ingredients),
		"steps":       len(recipe.Steps),
		"tags":        len(tagNames),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		recipe.Tags = nil
		if err := tx.Omit("Tags").Create(recipe).Error; err != nil {
			return err
		}
		if err := linkTags(tx, recipe.ID, tagNames); err != nil {
			return err
		}
		return reload(tx, recipe)
	})
	if err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"title": recipe.Title,
			"slug":  recipe.Slug,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
		"slug":      recipe.Slug,
	})
	return nil
}

func (r *recipeRepository) FindAll() ([]model.Recipe, error) {
	logger.Debug("Finding all recipes in database", nil)

	var recipes []model.Recipe
	if err := withChildren(r.db).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		logger.Error("Failed to find recipes in database", err, nil)
		return nil, err
	}

	logger.Debug("Recipes found in database", map[string]interface{}{
		"count": len(recipes),
	})
	return recipes, nil
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	logger.Debug("Finding recipe by ID in database", map[string]interface{}{
		"recipe_id": id,
	})

	var recipe model.Recipe
	if err := withChildren(r.db).First(&recipe, id).Error; err != nil {
		logger.Error("Failed to find recipe by ID in database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return &recipe, nil
}

// Replace 레시피 본문을 갱신하고 재료/조리 과정/태그 연결을 통째로 교체한다.
// 하나의 트랜잭션으로 실행되므로 중간에 실패하면 기존 데이터가 그대로 남는다.
func (r *recipeRepository) Replace(recipe *model.Recipe, tagNames []string) error {
	logger.Debug("Replacing recipe in database", map[string]interface{}{
		"recipe_id":   recipe.ID,
		"title":       recipe.Title,
		"ingredients": len(recipe.Ingredients),
		"steps":       len(recipe.Steps),
		"tags":        len(tagNames),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Recipe
		if err := tx.Select("id").First(&existing, recipe.ID).Error; err != nil {
			return err
		}

		if err := deleteChildren(tx, recipe.ID); err != nil {
			return err
		}

		if err := tx.Model(&model.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"title":       recipe.Title,
				"slug":        recipe.Slug,
				"cover_image": recipe.CoverImage,
				"rating":      recipe.Rating,
				"category":    recipe.Category,
				"tip":         recipe.Tip,
			}).Error; err != nil {
			return err
		}

		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}

		for i := range recipe.Steps {
			recipe.Steps[i].ID = 0
			recipe.Steps[i].RecipeID = recipe.ID
		}
		if len(recipe.Steps) > 0 {
			if err := tx.Create(&recipe.Steps).Error; err != nil {
				return err
			}
		}

		if err := linkTags(tx, recipe.ID, tagNames); err != nil {
			return err
		}
		return reload(tx, recipe)
	})
	if err != nil {
		logger.Error("Failed to replace recipe in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}

	logger.Debug("Recipe replaced in database", map[string]interface{}{
		"recipe_id": recipe.ID,
		"slug":      recipe.Slug,
	})
	return nil
}

// Delete 레시피와 하위 행을 함께 삭제. 없는 ID면 gorm.ErrRecordNotFound
func (r *recipeRepository) Delete(id uint) error {
	logger.Debug("Deleting recipe from database", map[string]interface{}{
		"recipe_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&model.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete recipe from database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return err
	}

	logger.Debug("Recipe deleted from database", map[string]interface{}{
		"recipe_id": id,
	})
	return nil
}

func deleteChildren(tx *gorm.DB, recipeID uint) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Ingredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Step{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error
}

func linkTags(tx *gorm.DB, recipeID uint, tagNames []string) error {
	tags, err := upsertTags(tx, tagNames)
	if err != nil {
		return err
	}

	seen := make(map[uint]bool, len(tags))
	links := make([]model.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		links = append(links, model.RecipeTag{RecipeID: recipeID, TagID: tag.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}

func reload(tx *gorm.DB, recipe *model.Recipe) error {
	var fresh model.Recipe
	if err := withChildren(tx).First(&fresh, recipe.ID).Error; err != nil {
		return err
	}
	*recipe = fresh
	return nil
}
