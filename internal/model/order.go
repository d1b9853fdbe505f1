package model

import "github.com/shopspring/decimal"

// 订单状态
const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusCompleted = "completed" // 已完成
	OrderStatusCancelled = "cancelled" // 已取消
)

// Order 订单
// 创建后除 Status 外不可变；TotalAmount 是下单时刻的快照，
// 之后菜品调价不回溯
type Order struct {
	BaseModel
	UserID      *int64          `gorm:"index"` // 扫码匿名单为 NULL
	ShopID      int64           `gorm:"index;not null"`
	TableID     *int64          `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      string          `gorm:"size:20;index;default:'pending'"`
	Remark      string          `gorm:"size:255"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行，Price 为下单时刻的单价快照
type OrderItem struct {
	BaseModel
	OrderID  int64           `gorm:"index;not null"`
	DishID   int64           `gorm:"index;not null"`
	Quantity int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
