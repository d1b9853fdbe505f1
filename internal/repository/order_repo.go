package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderWithItemCount 订单列表行，附带订单内商品件数
type OrderWithItemCount struct {
	model.Order
	ItemCount int64
}

// OrderItemDetail 订单明细行，联菜品表取名称和图片
type OrderItemDetail struct {
	DishID   int64
	DishName string
	ImageURL string
	Price    decimal.Decimal
	Quantity int
}

// TopDishStat 热销菜品统计
type TopDishStat struct {
	DishID   int64
	DishName string
	ImageURL string
	Quantity int64
}

// SalesStats 个人销售统计（只统计已完成订单）
type SalesStats struct {
	TotalOrders   int64
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
	TopDishes     []TopDishStat
}

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]OrderWithItemCount, error)
	ListByShop(ctx context.Context, shopID int64, limit int) ([]OrderWithItemCount, error)
	GetItems(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
	GetSalesStats(ctx context.Context, userID int64, topN int) (*SalesStats, error)
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create 创建订单头
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateItems 批量写入订单行
func (r *orderRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// GetByID 获取订单
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// ListByUser 用户订单列表，新单在前，附带件数
func (r *orderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]OrderWithItemCount, error) {
	return r.listWithItemCount(ctx, "orders.user_id = ?", userID, limit)
}

// ListByShop 店铺订单列表，新单在前，附带件数
func (r *orderRepository) ListByShop(ctx context.Context, shopID int64, limit int) ([]OrderWithItemCount, error) {
	return r.listWithItemCount(ctx, "orders.shop_id = ?", shopID, limit)
}

func (r *orderRepository) listWithItemCount(ctx context.Context, cond string, arg interface{}, limit int) ([]OrderWithItemCount, error) {
	var rows []OrderWithItemCount
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.*, COALESCE(SUM(order_items.quantity), 0) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where(cond, arg).
		Group("orders.id").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GetItems 订单明细，联菜品表取名称
func (r *orderRepository) GetItems(ctx context.Context, orderID int64) ([]OrderItemDetail, error) {
	var items []OrderItemDetail
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("order_items.dish_id, dishes.name AS dish_name, dishes.image_url, order_items.price, order_items.quantity").
		Joins("LEFT JOIN dishes ON dishes.id = order_items.dish_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&items).Error
	return items, err
}

// UpdateStatus 更新订单状态，返回影响行数
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// GetSalesStats 个人销售统计：该用户已完成订单的单数、营收、热销 TopN
func (r *orderRepository) GetSalesStats(ctx context.Context, userID int64, topN int) (*SalesStats, error) {
	stats := &SalesStats{TotalRevenue: decimal.Zero}

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusCompleted).
		Count(&stats.TotalOrders).Error
	if err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err = r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusCompleted).
		Select("SUM(total_amount)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	err = r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ?", userID, model.OrderStatusCompleted).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&stats.TotalQuantity).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("order_items.dish_id, dishes.name AS dish_name, dishes.image_url, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("LEFT JOIN dishes ON dishes.id = order_items.dish_id").
		Where("orders.user_id = ? AND orders.status = ?", userID, model.OrderStatusCompleted).
		Group("order_items.dish_id, dishes.name, dishes.image_url").
		Order("quantity DESC").
		Limit(topN).
		Scan(&stats.TopDishes).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ==================== 事务支持 ====================

// OrderUnitOfWork 下单工作单元（事务）：
// 订单头、订单行、销量递增、清购物车必须在同一事务内完成
type OrderUnitOfWork struct {
	db     *gorm.DB
	Orders OrderRepository
	Carts  CartRepository
	Dishes DishRepository
}

// NewOrderUnitOfWork 创建工作单元
func NewOrderUnitOfWork(db *gorm.DB) *OrderUnitOfWork {
	return &OrderUnitOfWork{
		db:     db,
		Orders: NewOrderRepository(db),
		Carts:  NewCartRepository(db),
		Dishes: NewDishRepository(db),
	}
}

// Transaction 执行事务
func (u *OrderUnitOfWork) Transaction(ctx context.Context, fn func(uow *OrderUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &OrderUnitOfWork{
			db:     tx,
			Orders: NewOrderRepository(tx),
			Carts:  NewCartRepository(tx),
			Dishes: NewDishRepository(tx),
		}
		return fn(txUow)
	})
}
