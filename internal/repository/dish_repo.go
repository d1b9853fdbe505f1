package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== DishRepository 菜品仓库 ====================

// DishRepository 菜品仓库接口
type DishRepository interface {
	Create(ctx context.Context, dish *model.Dish) error
	GetByID(ctx context.Context, id int64) (*model.Dish, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (int64, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Dish, error)
	ListAvailable(ctx context.Context, shopID int64) ([]model.Dish, error)
	IncrementSales(ctx context.Context, dishID int64, delta int) error
}

// ==================== 实现 ====================

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository 创建菜品仓库
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

// Create 创建菜品
func (r *dishRepository) Create(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

// GetByID 根据 ID 获取菜品
func (r *dishRepository) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	var dish model.Dish
	err := r.db.WithContext(ctx).First(&dish, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &dish, err
}

// Update 部分更新菜品
func (r *dishRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Dish{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete 删除菜品，返回影响行数
func (r *dishRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Dish{}, id)
	return result.RowsAffected, result.Error
}

// ListByShop 店铺全部菜品，新创建的在前
func (r *dishRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Dish, error) {
	var dishes []model.Dish
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&dishes).Error
	return dishes, err
}

// ListAvailable 顾客菜单：只返回上架菜品，按分类再按销量排
func (r *dishRepository) ListAvailable(ctx context.Context, shopID int64) ([]model.Dish, error) {
	var dishes []model.Dish
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND status = ?", shopID, model.DishStatusAvailable).
		Order("category, sales DESC").
		Find(&dishes).Error
	return dishes, err
}

// IncrementSales 递增销量（在下单事务内调用）
func (r *dishRepository) IncrementSales(ctx context.Context, dishID int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.Dish{}).
		Where("id = ?", dishID).
		Update("sales", gorm.Expr("sales + ?", delta)).Error
}
