package service

import (
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories", err)
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}
