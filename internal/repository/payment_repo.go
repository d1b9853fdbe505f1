package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== PaymentRepository 支付单仓库 ====================

// PaymentRepository 预支付单仓库接口
type PaymentRepository interface {
	Create(ctx context.Context, intent *model.PaymentIntent) error
	GetByPrepayID(ctx context.Context, prepayID string) (*model.PaymentIntent, error)
	GetLatestByOrder(ctx context.Context, orderID int64) (*model.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
}

// ==================== 实现 ====================

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付单仓库
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create 写入预支付单
func (r *paymentRepository) Create(ctx context.Context, intent *model.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

// GetByPrepayID 按预支付号查询
func (r *paymentRepository) GetByPrepayID(ctx context.Context, prepayID string) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	err := r.db.WithContext(ctx).Where("prepay_id = ?", prepayID).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &intent, err
}

// GetLatestByOrder 订单最近一笔预支付单
func (r *paymentRepository) GetLatestByOrder(ctx context.Context, orderID int64) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &intent, err
}

// UpdateStatus 更新支付单状态
func (r *paymentRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentIntent{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}
