package model

import (
	"time"
)

// Tag 자유 입력 태그. 처음 사용될 때 생성되고 고아가 되어도 삭제하지 않는다.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// RecipeTag represents the many-to-many relationship between recipes and tags
// 레시피와 태그의 다대다 관계
type RecipeTag struct {
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
