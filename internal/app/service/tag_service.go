package service

import (
	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/repository"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
)

type TagService interface {
	ListTags() ([]model.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// ListTags 모든 태그 목록 조회 (이름순, 자동완성용)
func (s *tagService) ListTags() ([]model.Tag, error) {
	tags, err := s.tagRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list tags", err)
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}
