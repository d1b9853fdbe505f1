package model

// CartItem 购物车行
// (user_id, dish_id) 复合唯一，数量永远 > 0，归零即删行
// 金额不落库，读取时按菜品现价实时计算
type CartItem struct {
	BaseModel
	UserID   int64 `gorm:"uniqueIndex:uk_user_dish;not null"`
	DishID   int64 `gorm:"uniqueIndex:uk_user_dish;not null"`
	Quantity int   `gorm:"not null"`
}

func (CartItem) TableName() string { return "cart_items" }
