package storage

import (
	"context"
	"fmt"
	"io"
)

// AllowedImageTypes 업로드 허용 MIME 타입
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ImageStorage 업로드된 이미지를 저장하고 공개 URL을 돌려준다
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete 이 스토리지가 발급한 URL의 객체를 삭제
	Delete(ctx context.Context, fileURL string) error
	// Owns 이 스토리지가 발급한 URL인지
	Owns(fileURL string) bool
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

// ValidateContentType validates the content type
func ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
