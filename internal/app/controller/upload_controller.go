package controller

import (
	"errors"
	"net/http"

	"github.com/bufgix/recipe-blog-backend/internal/app/service"
	apperrors "github.com/bufgix/recipe-blog-backend/internal/errors"
	"github.com/bufgix/recipe-blog-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// UploadImage compresses and stores a cover image
// POST /api/v1/upload (multipart: file, previous_url)
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Upload request without file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "업로드할 파일을 선택해주세요")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.InternalError(c, "파일을 읽을 수 없습니다")
		return
	}
	defer file.Close()

	url, err := ctrl.uploadService.UploadImage(c.Request.Context(), service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	}, c.PostForm("previous_url"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			apperrors.RequestEntityTooLarge(c, "이미지는 10MB 이하만 업로드할 수 있습니다")
		case errors.Is(err, service.ErrInvalidImage):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "JPEG, PNG, GIF, WEBP 이미지만 업로드할 수 있습니다")
		default:
			log.Error("Failed to upload image", err, map[string]interface{}{
				"filename": fileHeader.Filename,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "이미지 업로드에 실패했습니다. 잠시 후 다시 시도해주세요")
		}
		return
	}

	log.Info("Image uploaded successfully", map[string]interface{}{
		"filename": fileHeader.Filename,
		"url":      url,
	})

	c.JSON(http.StatusOK, gin.H{
		"url": url,
	})
}
