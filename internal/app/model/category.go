package model

// Category 레시피 분류 (국/찌개, 볶음 ...)
type Category struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Order int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 초기 카테고리 목록
var DefaultCategories = []Category{
	{Name: "국/찌개", Order: 1},
	{Name: "볶음", Order: 2},
	{Name: "무침", Order: 3},
	{Name: "조림", Order: 4},
	{Name: "구이", Order: 5},
	{Name: "튀김", Order: 6},
	{Name: "찜", Order: 7},
	{Name: "전/부침", Order: 8},
	{Name: "밥/죽/면", Order: 9},
	{Name: "디저트", Order: 10},
	{Name: "기타", Order: 11},
}
