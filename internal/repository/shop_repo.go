package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== ShopRepository 店铺仓库 ====================

// ShopTodayStats 店铺当日经营统计
type ShopTodayStats struct {
	Orders  int64
	Revenue decimal.Decimal
}

// ShopRepository 店铺仓库接口
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	Upsert(ctx context.Context, shop *model.Shop) error
	TodayStats(ctx context.Context, shopID int64) (*ShopTodayStats, error)
}

// ==================== 实现 ====================

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// GetByID 获取店铺
func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// Upsert 按 ID 创建或更新店铺资料
func (r *shopRepository) Upsert(ctx context.Context, shop *model.Shop) error {
	var existing model.Shop
	err := r.db.WithContext(ctx).First(&existing, shop.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(shop).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", shop.ID).
		Updates(map[string]interface{}{
			"shop_name":      shop.ShopName,
			"description":    shop.Description,
			"address":        shop.Address,
			"phone":          shop.Phone,
			"business_hours": shop.BusinessHours,
		}).Error
}

// TodayStats 统计今日订单数与营业额
func (r *shopRepository) TodayStats(ctx context.Context, shopID int64) (*ShopTodayStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &ShopTodayStats{Revenue: decimal.Zero}

	// 取消单不计入当日经营数据
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("shop_id = ? AND created_at >= ? AND status <> ?", shopID, dayStart, model.OrderStatusCancelled).
		Count(&stats.Orders).Error
	if err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	err = r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("SUM(total_amount)").
		Where("shop_id = ? AND created_at >= ? AND status <> ?", shopID, dayStart, model.OrderStatusCancelled).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.Revenue = revenue.Decimal
	}
	return stats, nil
}
