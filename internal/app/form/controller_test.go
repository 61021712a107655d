package form

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bufgix/recipe-blog-backend/internal/app/model"
	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	created []service.RecipeInput
	updated map[uint]service.RecipeInput
	block   chan struct{}
	started chan struct{}
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{updated: map[uint]service.RecipeInput{}}
}

func (f *fakeSubmitter) CreateRecipe(input service.RecipeInput) (*model.Recipe, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, input)
	return &model.Recipe{ID: uint(len(f.created)), Title: input.Title}, nil
}

func (f *fakeSubmitter) UpdateRecipe(id uint, input service.RecipeInput) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = input
	return &model.Recipe{ID: id, Title: input.Title}, nil
}

type fakeUploader struct {
	previous []string
	err      error
}

func (f *fakeUploader) UploadImage(ctx context.Context, upload service.ImageUpload, previousURL string) (string, error) {
	f.previous = append(f.previous, previousURL)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/recipes/new.jpg", nil
}

func TestController_SubmitCreate(t *testing.T) {
	submitter := newFakeSubmitter()
	ctrl := NewController(submitter, nil)

	d := Reduce(NewDraft(), SetTitle("된장찌개"), UpdateIngredient(0, "두부", "1모"))
	recipe, err := ctrl.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "된장찌개", recipe.Title)

	require.Len(t, submitter.created, 1)
	assert.Len(t, submitter.created[0].Ingredients, 1)
	assert.Empty(t, submitter.created[0].Steps)
	assert.Empty(t, submitter.updated)
}

func TestController_SubmitUpdate(t *testing.T) {
	submitter := newFakeSubmitter()
	ctrl := NewController(submitter, nil)

	d := Reduce(FromRecipe(&model.Recipe{ID: 3, Title: "청국장", Rating: 3}), SetTitle("청국장찌개"))
	_, err := ctrl.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Empty(t, submitter.created)
	assert.Equal(t, "청국장찌개", submitter.updated[3].Title)
}

func TestController_RejectsDuplicateSubmit(t *testing.T) {
	submitter := newFakeSubmitter()
	submitter.block = make(chan struct{})
	submitter.started = make(chan struct{})
	ctrl := NewController(submitter, nil)
	d := Reduce(NewDraft(), SetTitle("된장찌개"))

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background(), d)
		done <- err
	}()

	<-submitter.started
	_, err := ctrl.Submit(context.Background(), d)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(submitter.block)
	require.NoError(t, <-done)
	assert.Len(t, submitter.created, 1)

	// 끝난 뒤에는 다시 제출할 수 있다
	submitter.block = nil
	submitter.started = nil
	_, err = ctrl.Submit(context.Background(), d)
	assert.NoError(t, err)
}

func TestController_SubmitCancelledContext(t *testing.T) {
	submitter := newFakeSubmitter()
	ctrl := NewController(submitter, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ctrl.Submit(ctx, NewDraft())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, submitter.created)
}

func TestController_SelectImage(t *testing.T) {
	uploader := &fakeUploader{}
	ctrl := NewController(newFakeSubmitter(), uploader)

	d := Reduce(NewDraft(), SetCoverImage("https://cdn.example.com/recipes/old.jpg"))
	next, err := ctrl.SelectImage(context.Background(), d, service.ImageUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Body:        bytes.NewReader([]byte("png")),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/recipes/new.jpg", next.CoverImage)
	assert.Equal(t, "https://cdn.example.com/recipes/old.jpg", d.CoverImage)
	assert.Equal(t, []string{"https://cdn.example.com/recipes/old.jpg"}, uploader.previous)
}

func TestController_SelectImageFailureKeepsDraft(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("too large")}
	ctrl := NewController(newFakeSubmitter(), uploader)

	d := Reduce(NewDraft(), SetTitle("유지"))
	next, err := ctrl.SelectImage(context.Background(), d, service.ImageUpload{Body: bytes.NewReader(nil)})
	assert.Error(t, err)
	assert.Equal(t, d, next)
}
