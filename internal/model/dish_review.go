package model

// DishReview 菜品评价
// (dish_id, user_id) 复合唯一；同一用户重复评价是覆盖而不是追加
type DishReview struct {
	BaseModel
	DishID  int64  `gorm:"uniqueIndex:uk_dish_user;not null"`
	UserID  int64  `gorm:"uniqueIndex:uk_dish_user;not null"`
	Rating  int    `gorm:"not null"` // 1-5
	Content string `gorm:"type:text"`
}

func (DishReview) TableName() string { return "dish_reviews" }
