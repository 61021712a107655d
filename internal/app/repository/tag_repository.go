package repository

import (
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	FindAll() ([]model.Tag, error)
	FindOrCreate(name string) (*model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindAll 이름 오름차순 (자동완성용)
func (r *tagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		logger.Error("Failed to find tags in database", err, nil)
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindOrCreate(name string) (*model.Tag, error) {
	tags, err := upsertTags(r.db, []string{name})
	if err != nil {
		logger.Error("Failed to upsert tag in database", err, map[string]interface{}{
			"tag": name,
		})
		return nil, err
	}
	return &tags[0], nil
}

// upsertTags 이름 유니크 키에 대한 INSERT ... ON CONFLICT DO NOTHING 후 다시 읽는다.
// 조회 후 생성 방식과 달리 동시에 같은 태그를 만들어도 중복 행이 생기지 않는다.
func upsertTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		candidate := model.Tag{Name: name}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&candidate).Error; err != nil {
			return nil, err
		}

		var stored model.Tag
		if err := tx.Where("name = ?", name).First(&stored).Error; err != nil {
			return nil, err
		}
		tags = append(tags, stored)
	}
	return tags, nil
}
