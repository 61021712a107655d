package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		context string
		want    ErrorInfo
	}{
		{
			name:    "nil error",
			err:     nil,
			context: "get recipe",
			want:    ErrorInfo{Code: InternalServerError, Message: "서버 오류가 발생했습니다"},
		},
		{
			name:    "record not found",
			err:     fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound),
			context: "get recipe",
			want:    ErrorInfo{Code: ResourceNotFound, Message: "레시피를 찾을 수 없습니다"},
		},
		{
			name:    "duplicate tag",
			err:     errors.New(`ERROR: duplicate key value violates unique constraint "idx_tags_name" (SQLSTATE 23505)`),
			context: "create recipe",
			want:    ErrorInfo{Code: ResourceAlreadyExists, Message: "이미 존재하는 태그입니다"},
		},
		{
			name:    "not null title",
			err:     errors.New(`ERROR: null value in column "title" violates not-null constraint`),
			context: "update recipe",
			want:    ErrorInfo{Code: ValidationRequired, Message: "제목은 필수 항목입니다"},
		},
		{
			name:    "connection refused",
			err:     errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			context: "list recipes",
			want:    ErrorInfo{Code: InternalDatabaseError, Message: "데이터베이스 연결에 실패했습니다. 잠시 후 다시 시도해주세요"},
		},
		{
			name:    "unknown error on delete",
			err:     errors.New("boom"),
			context: "delete recipe",
			want:    ErrorInfo{Code: InternalServerError, Message: "삭제 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseError(tt.err, tt.context))
		})
	}
}

type recordingResponder struct {
	status int
	body   interface{}
}

func (r *recordingResponder) JSON(status int, body interface{}) {
	r.status = status
	r.body = body
}

func TestParseAndRespond(t *testing.T) {
	rec := &recordingResponder{}
	ParseAndRespond(rec, http.StatusInternalServerError, errors.New("boom"), "upload image")

	assert.Equal(t, http.StatusInternalServerError, rec.status)
	assert.Equal(t, ErrorResponse{
		Error:   InternalServerError,
		Message: "이미지 업로드 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}, rec.body)
}
