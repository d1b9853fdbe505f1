package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓库接口
type CartRepository interface {
	Upsert(ctx context.Context, item *model.CartItem) error
	GetByUserAndDish(ctx context.Context, userID, dishID int64) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, dishID int64, quantity int) (int64, error)
	Remove(ctx context.Context, userID, dishID int64) (int64, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

// ==================== 实现 ====================

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Upsert 加购：同一 (user_id, dish_id) 已存在时数量累加
func (r *cartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "dish_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
		}),
	}).Create(item).Error
}

// GetByUserAndDish 查询单条购物车记录
func (r *cartRepository) GetByUserAndDish(ctx context.Context, userID, dishID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// ListByUser 用户购物车，按加入时间排
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error
	return items, err
}

// UpdateQuantity 覆盖数量，返回影响行数
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, dishID int64, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// Remove 移除单个菜品，返回影响行数
func (r *cartRepository) Remove(ctx context.Context, userID, dishID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND dish_id = ?", userID, dishID).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}

// Clear 清空用户购物车
func (r *cartRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
