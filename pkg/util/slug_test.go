package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "Korean title with space", title: "김치찌개 끓이기", want: "김치찌개-끓이기"},
		{name: "Punctuation run", title: "Spicy!! Soup", want: "spicy-soup"},
		{name: "Leading and trailing symbols", title: "  **된장국**  ", want: "된장국"},
		{name: "Mixed script and digits", title: "Easy 김밥 10분", want: "easy-김밥-10분"},
		{name: "Slash category style", title: "국/찌개", want: "국-찌개"},
		{name: "Uppercase ASCII", title: "BULGOGI", want: "bulgogi"},
		{name: "Only symbols", title: "!!!", want: ""},
		{name: "Empty", title: "", want: ""},
		{name: "Hangul jamo are not syllables", title: "ㅋㅋ 라면", want: "라면"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	title := "엄마표 된장찌개 (2인분)"
	assert.Equal(t, Slugify(title), Slugify(title))
}

func TestSlugify_Idempotent(t *testing.T) {
	titles := []string{
		"김치찌개 끓이기",
		"Spicy!! Soup",
		"--a--b--",
		"닭갈비 & 막국수 Set #2",
	}

	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "title: %s", title)
	}
}
