package util

import (
	"regexp"
	"strings"
)

// 영문 소문자, 숫자, 완성형 한글 이외의 문자열
var nonSlugChars = regexp.MustCompile(`[^a-z0-9가-힣]+`)

// Slugify 제목으로 URL용 slug를 생성합니다.
// 같은 입력에는 항상 같은 결과를 돌려주지만 유일성은 보장하지 않습니다.
//
//	"김치찌개 끓이기" -> "김치찌개-끓이기"
//	"Spicy!! Soup"  -> "spicy-soup"
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
