package service

import (
	"context"
	"errors"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== NotificationService 通知服务 ====================

// NotificationService 站内通知服务
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List 通知列表，附未读数
func (s *NotificationService) List(ctx context.Context, userID int64, page, limit int) (*dto.NotificationListResp, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifs, err := s.notifRepo.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResp, 0, len(notifs))
	for _, n := range notifs {
		items = append(items, dto.NotificationResp{
			ID:          n.ID,
			UserID:      n.UserID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			RelatedID:   n.RelatedID,
			RelatedType: n.RelatedType,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return &dto.NotificationListResp{
		Notifications: items,
		UnreadCount:   unread,
	}, nil
}

// UnreadCount 未读通知数
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead 单条置已读，归属不符视同不存在
func (s *NotificationService) MarkRead(ctx context.Context, userID, notifID int64) error {
	rows, err := s.notifRepo.MarkRead(ctx, userID, notifID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 全部置已读，返回本次置位条数
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Delete 删除单条通知，归属不符视同不存在
func (s *NotificationService) Delete(ctx context.Context, userID, notifID int64) error {
	rows, err := s.notifRepo.Delete(ctx, userID, notifID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// ==================== 错误定义 ====================

var ErrNotificationNotFound = errors.New("通知不存在")
