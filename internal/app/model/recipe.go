package model

import (
	"time"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Recipe 레시피 본문. 재료/조리 과정/태그는 수정 시 통째로 교체된다.
type Recipe struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"index;not null" json:"slug"` // 제목에서 파생, 유일성은 보장하지 않음
	CoverImage *string   `gorm:"type:text" json:"cover_image"`
	Rating     float64   `gorm:"not null;default:3" json:"rating"` // 난이도 (1~5)
	Category   *string   `gorm:"type:varchar(50);index" json:"category"`
	Tip        *string   `gorm:"type:text" json:"tip"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps       []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`
	Tags        []RecipeTag  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// HasTag 레시피에 주어진 이름의 태그가 달려 있는지 확인
func (r *Recipe) HasTag(name string) bool {
	for _, rt := range r.Tags {
		if rt.Tag.Name == name {
			return true
		}
	}
	return false
}

// TagNames 태그 이름 목록
func (r *Recipe) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, rt := range r.Tags {
		names = append(names, rt.Tag.Name)
	}
	return names
}

// CategoryName 카테고리가 없으면 빈 문자열
func (r *Recipe) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return *r.Category
}

// Ingredient 재료. Order는 레시피 안에서 0부터 빈틈없이 증가한다.
type Ingredient struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RecipeID uint   `gorm:"index;not null" json:"recipe_id"`
	Name     string `gorm:"not null" json:"name"`
	Amount   string `gorm:"not null" json:"amount"`
	Order    int    `gorm:"column:sort_order;not null" json:"order"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Step 조리 과정
type Step struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	RecipeID    uint   `gorm:"index;not null" json:"recipe_id"`
	Instruction string `gorm:"type:text;not null" json:"instruction"`
	Order       int    `gorm:"column:sort_order;not null" json:"order"`
}

func (Step) TableName() string {
	return "steps"
}
