package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== TableRepository 桌位仓库 ====================

// TableRepository 桌位仓库接口
type TableRepository interface {
	Create(ctx context.Context, table *model.DiningTable) error
	CreateBatch(ctx context.Context, tables []model.DiningTable) error
	GetByID(ctx context.Context, id int64) (*model.DiningTable, error)
	GetByNumber(ctx context.Context, tableNumber string) (*model.DiningTable, error)
	List(ctx context.Context) ([]model.DiningTable, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ReleaseStaleCleaning(ctx context.Context, olderThan time.Time) (int64, error)
}

// ==================== 实现 ====================

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository 创建桌位仓库
func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// Create 创建桌位
func (r *tableRepository) Create(ctx context.Context, table *model.DiningTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

// CreateBatch 批量创建（引导初始化用）
func (r *tableRepository) CreateBatch(ctx context.Context, tables []model.DiningTable) error {
	if len(tables) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tables).Error
}

// GetByID 获取桌位
func (r *tableRepository) GetByID(ctx context.Context, id int64) (*model.DiningTable, error) {
	var table model.DiningTable
	err := r.db.WithContext(ctx).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

// GetByNumber 按桌号获取桌位
func (r *tableRepository) GetByNumber(ctx context.Context, tableNumber string) (*model.DiningTable, error) {
	var table model.DiningTable
	err := r.db.WithContext(ctx).Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

// List 全部桌位，按桌号排
func (r *tableRepository) List(ctx context.Context) ([]model.DiningTable, error) {
	var tables []model.DiningTable
	err := r.db.WithContext(ctx).Order("table_number").Find(&tables).Error
	return tables, err
}

// Count 桌位总数
func (r *tableRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DiningTable{}).Count(&count).Error
	return count, err
}

// UpdateStatus 更新状态，返回影响行数
func (r *tableRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DiningTable{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// Delete 删除桌位，返回影响行数
func (r *tableRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.DiningTable{}, id)
	return result.RowsAffected, result.Error
}

// ReleaseStaleCleaning 把长时间停留在"清理中"的桌位放回空闲
func (r *tableRepository) ReleaseStaleCleaning(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DiningTable{}).
		Where("status = ? AND updated_at < ?", model.TableStatusCleaning, olderThan).
		Update("status", model.TableStatusAvailable)
	return result.RowsAffected, result.Error
}
