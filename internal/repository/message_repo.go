package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== ConversationRepository 会话仓库 ====================

// ConversationWithMeta 会话列表行，附带最后一条消息和未读数
type ConversationWithMeta struct {
	model.Conversation
	LastMessage     string
	LastMessageTime time.Time
	UnreadCount     int
}

// ConversationRepository 会话仓库接口
type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	GetByUsers(ctx context.Context, userA, userB int64) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID int64) ([]ConversationWithMeta, error)
	Touch(ctx context.Context, id int64) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话仓库
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create 创建会话
func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

// GetByID 获取会话
func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conv, err
}

// GetByUsers 查两人间的会话，双向匹配
func (r *conversationRepository) GetByUsers(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userA, userB, userB, userA).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conv, err
}

// ListByUser 用户的会话列表，附最后消息与未读数，最近活跃在前
func (r *conversationRepository) ListByUser(ctx context.Context, userID int64) ([]ConversationWithMeta, error) {
	var rows []ConversationWithMeta
	err := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Select(`conversations.*,
			COALESCE((SELECT content FROM messages m
				WHERE m.conversation_id = conversations.id
				ORDER BY m.created_at DESC LIMIT 1), '') AS last_message,
			COALESCE((SELECT m.created_at FROM messages m
				WHERE m.conversation_id = conversations.id
				ORDER BY m.created_at DESC LIMIT 1), conversations.created_at) AS last_message_time,
			(SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = conversations.id
				AND m.sender_id != ? AND m.is_read = ?) AS unread_count`,
			userID, false).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_time DESC").
		Scan(&rows).Error
	return rows, err
}

// Touch 把会话的 updated_at 顶到当前时间
func (r *conversationRepository) Touch(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// ==================== MessageRepository 消息仓库 ====================

// MessageRepository 消息仓库接口
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error)
	CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓库
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 写入消息
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByConversation 会话消息，按时间正序
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead 把对方发来的未读消息全部置已读
func (r *messageRepository) MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?",
			conversationID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// CountUnread 对方发来的未读消息数
func (r *messageRepository) CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?",
			conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

// ==================== 事务支持 ====================

// MessageUnitOfWork 发消息工作单元（事务）：
// 消息写入和会话活跃时间更新必须同事务完成
type MessageUnitOfWork struct {
	db            *gorm.DB
	Conversations ConversationRepository
	Messages      MessageRepository
}

// NewMessageUnitOfWork 创建工作单元
func NewMessageUnitOfWork(db *gorm.DB) *MessageUnitOfWork {
	return &MessageUnitOfWork{
		db:            db,
		Conversations: NewConversationRepository(db),
		Messages:      NewMessageRepository(db),
	}
}

// Transaction 执行事务
func (u *MessageUnitOfWork) Transaction(ctx context.Context, fn func(uow *MessageUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &MessageUnitOfWork{
			db:            tx,
			Conversations: NewConversationRepository(tx),
			Messages:      NewMessageRepository(tx),
		}
		return fn(txUow)
	})
}
