package model

import "github.com/shopspring/decimal"

// 菜品状态
const (
	DishStatusAvailable   = "available"   // 上架
	DishStatusUnavailable = "unavailable" // 下架
)

// Dish 菜品
type Dish struct {
	BaseModel
	ShopID        int64           `gorm:"index;not null"`
	Name          string          `gorm:"size:100;not null"`
	Description   string          `gorm:"type:text"`
	CookingMethod string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL      string          `gorm:"size:255"`
	Category      string          `gorm:"size:50;index"`
	IsRecommended bool            `gorm:"default:false"`
	Status        string          `gorm:"size:20;default:'available'"`

	// 累计销量。唯一数据源：下单事务内随订单行一起递增，
	// 读取端不再按 order_items 聚合兜底
	Sales int `gorm:"default:0"`
}

func (Dish) TableName() string { return "dishes" }
