package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== NotificationRepository 通知仓库 ====================

// NotificationRepository 通知仓库接口
type NotificationRepository interface {
	Create(ctx context.Context, notif *model.Notification) error
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notifID int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, notifID int64) (int64, error)
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 实现 ====================

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 写入通知
func (r *notificationRepository) Create(ctx context.Context, notif *model.Notification) error {
	return r.db.WithContext(ctx).Create(notif).Error
}

// ListByUser 用户通知，新通知在前
func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Notification, error) {
	var notifs []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifs).Error
	return notifs, err
}

// CountUnread 未读通知数
func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 单条置已读，归属不符时不生效
func (r *notificationRepository) MarkRead(ctx context.Context, userID, notifID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// MarkAllRead 全部置已读
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Delete 删除单条通知，归属不符时不生效
func (r *notificationRepository) Delete(ctx context.Context, userID, notifID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notifID, userID).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

// DeleteReadBefore 清理早于指定时间的已读通知（定时任务用）
func (r *notificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, before).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
