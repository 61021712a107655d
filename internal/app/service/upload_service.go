package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bufgix/recipe-blog-backend/internal/metrics"
	"github.com/bufgix/recipe-blog-backend/internal/storage"
	"github.com/bufgix/recipe-blog-backend/pkg/imageutil"
	"github.com/bufgix/recipe-blog-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrInvalidImage  = errors.New("invalid image")
	ErrImageTooLarge = errors.New("image too large")
	ErrUploadFailed  = errors.New("image upload failed")
)

// ImageUpload 업로드 요청으로 들어온 원본 파일
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	// UploadImage 압축 후 업로드하고 공개 URL을 돌려준다.
	// previousURL이 이 스토리지의 파일이면 업로드 성공 후 삭제한다.
	UploadImage(ctx context.Context, upload ImageUpload, previousURL string) (string, error)
}

type uploadService struct {
	storage  storage.ImageStorage
	maxBytes int64
	compress imageutil.CompressOptions
}

func NewUploadService(store storage.ImageStorage, maxBytes int64) UploadService {
	return &uploadService{
		storage:  store,
		maxBytes: maxBytes,
		compress: imageutil.DefaultCompressOptions(),
	}
}

func (s *uploadService) UploadImage(ctx context.Context, upload ImageUpload, previousURL string) (string, error) {
	url, err := s.upload(ctx, upload, previousURL)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidImage), errors.Is(err, ErrImageTooLarge):
		metrics.RecordImageUpload("rejected", 0, 0)
	default:
		metrics.RecordImageUpload("failed", 0, 0)
	}
	return url, err
}

func (s *uploadService) upload(ctx context.Context, upload ImageUpload, previousURL string) (string, error) {
	if upload.Size > 0 {
		if err := storage.ValidateFileSize(upload.Size, s.maxBytes); err != nil {
			logger.Warn("Upload rejected: file too large", map[string]interface{}{
				"filename": upload.Filename,
				"size":     upload.Size,
			})
			return "", fmt.Errorf("%w: %v", ErrImageTooLarge, err)
		}
	}

	// 크기 헤더를 믿지 않고 한 바이트 더 읽어 초과 여부를 확인
	raw, err := io.ReadAll(io.LimitReader(upload.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if int64(len(raw)) > s.maxBytes {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrImageTooLarge, s.maxBytes)
	}

	contentType := upload.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(raw)
	}
	if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		logger.Warn("Upload rejected: unsupported content type", map[string]interface{}{
			"filename":     upload.Filename,
			"content_type": contentType,
		})
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	result, err := imageutil.Compress(bytes.NewReader(raw), s.compress)
	if err != nil {
		if errors.Is(err, imageutil.ErrDecode) {
			return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		logger.Error("Failed to compress image", err, map[string]interface{}{
			"filename": upload.Filename,
		})
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	key := fmt.Sprintf("recipes/%s.jpg", uuid.New().String())
	url, err := s.storage.Upload(ctx, key, "image/jpeg", bytes.NewReader(result.Data), int64(len(result.Data)))
	if err != nil {
		logger.Error("Failed to store image", err, map[string]interface{}{
			"key": key,
		})
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	metrics.RecordImageUpload("success", len(raw), len(result.Data))
	logger.Info("Image uploaded", map[string]interface{}{
		"filename":       upload.Filename,
		"original_bytes": len(raw),
		"stored_bytes":   len(result.Data),
		"width":          result.Width,
		"height":         result.Height,
		"quality":        result.Quality,
		"url":            url,
	})

	if previousURL != "" && previousURL != url && s.storage.Owns(previousURL) {
		if err := s.storage.Delete(ctx, previousURL); err != nil {
			logger.Warn("Failed to delete previous image", map[string]interface{}{
				"url":   previousURL,
				"error": err.Error(),
			})
		}
	}

	return url, nil
}
