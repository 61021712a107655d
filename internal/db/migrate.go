package db

import (
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models 마이그레이션 대상 모델 (생성 순서대로)
func Models() []interface{} {
	return []interface{}{
		&model.Category{},
		&model.Tag{},
		&model.Recipe{},
		&model.Ingredient{},
		&model.Step{},
		&model.RecipeTag{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB 주어진 연결에 스키마를 만들고 초기 데이터를 넣는다
func MigrateDB(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedCategories(conn); err != nil {
		logger.Error("Failed to seed categories during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedCategories 기본 카테고리를 이름 기준으로 upsert (기존 행은 건드리지 않음)
func SeedCategories(conn *gorm.DB) error {
	inserted := 0
	for _, c := range model.DefaultCategories {
		category := c
		result := conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&category)
		if result.Error != nil {
			logger.Error("Failed to seed category", result.Error, map[string]interface{}{
				"category": category.Name,
			})
			return result.Error
		}
		inserted += int(result.RowsAffected)
	}

	logger.Info("Categories seeded", map[string]interface{}{
		"inserted": inserted,
		"total":    len(model.DefaultCategories),
	})
	return nil
}
