package form

import (
	"context"
	"errors"
	"sync"

	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
)

var (
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrUploadInProgress = errors.New("image upload already in progress")
)

// RecipeSubmitter service.RecipeService의 저장 부분
type RecipeSubmitter interface {
	CreateRecipe(input service.RecipeInput) (*model.Recipe, error)
	UpdateRecipe(id uint, input service.RecipeInput) (*model.Recipe, error)
}

type ImageUploader interface {
	UploadImage(ctx context.Context, upload service.ImageUpload, previousURL string) (string, error)
}

// Controller 저장 요청이 끝나기 전까지 같은 폼의 중복 제출을 막는다
type Controller struct {
	recipes  RecipeSubmitter
	uploader ImageUploader

	mu         sync.Mutex
	submitting bool
	uploading  bool
}

func NewController(recipes RecipeSubmitter, uploader ImageUploader) *Controller {
	return &Controller{
		recipes:  recipes,
		uploader: uploader,
	}
}

// Submit 새 초안이면 생성, RecipeID가 있으면 수정
func (c *Controller) Submit(ctx context.Context, d Draft) (*model.Recipe, error) {
	if !c.begin(&c.submitting) {
		logger.Warn("Duplicate recipe submission ignored", map[string]interface{}{
			"recipe_id": d.RecipeID,
		})
		return nil, ErrSubmitInProgress
	}
	defer c.end(&c.submitting)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := d.Input()
	if d.IsEdit() {
		return c.recipes.UpdateRecipe(d.RecipeID, input)
	}
	return c.recipes.CreateRecipe(input)
}

// SelectImage 이미지를 압축/업로드하고 대표 이미지를 바꾼 새 초안을 돌려준다.
// 기존 대표 이미지는 교체 대상으로 함께 전달된다.
func (c *Controller) SelectImage(ctx context.Context, d Draft, upload service.ImageUpload) (Draft, error) {
	if c.uploader == nil {
		return d, errors.New("image uploader not configured")
	}
	if !c.begin(&c.uploading) {
		return d, ErrUploadInProgress
	}
	defer c.end(&c.uploading)

	url, err := c.uploader.UploadImage(ctx, upload, d.CoverImage)
	if err != nil {
		logger.Warn("Cover image upload failed", map[string]interface{}{
			"filename": upload.Filename,
			"error":    err.Error(),
		})
		return d, err
	}
	return Reduce(d, SetCoverImage(url)), nil
}

func (c *Controller) begin(flag *bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (c *Controller) end(flag *bool) {
	c.mu.Lock()
	*flag = false
	c.mu.Unlock()
}
