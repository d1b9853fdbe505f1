package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== MessageService 私信服务 ====================

// 消息通知预览最多保留的字符数
const messagePreviewRunes = 50

// MessageService 私信服务
// 消息写入和会话活跃时间更新走工作单元事务
type MessageService struct {
	uow       *repository.MessageUnitOfWork
	convRepo  repository.ConversationRepository
	msgRepo   repository.MessageRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	log       zerolog.Logger
}

// NewMessageService 创建私信服务
func NewMessageService(
	uow *repository.MessageUnitOfWork,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		uow:       uow,
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		log:       log,
	}
}

// ==================== 会话 ====================

// GetOrCreateConversation 取两人会话，不存在则建
// 第二个返回值标记会话是否本次新建
func (s *MessageService) GetOrCreateConversation(ctx context.Context, userID, otherUserID int64) (int64, bool, error) {
	if userID == otherUserID {
		return 0, false, ErrSelfConversation
	}

	exists, err := s.userRepo.ExistsByID(ctx, otherUserID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, ErrUserNotFound
	}

	conv, err := s.convRepo.GetByUsers(ctx, userID, otherUserID)
	if err != nil {
		return 0, false, err
	}
	if conv != nil {
		return conv.ID, false, nil
	}

	conv = &model.Conversation{User1ID: userID, User2ID: otherUserID}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return 0, false, err
	}
	return conv.ID, true, nil
}

// ListConversations 会话列表，最近活跃在前
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResp, error) {
	rows, err := s.convRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ConversationResp, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		otherID := row.OtherUserID(userID)
		item := dto.ConversationResp{
			ID:             row.ID,
			ConversationID: row.ID,
			UserID:         otherID,
			Username:       "已注销用户",
			LastContent:    row.LastMessage,
			LastTime:       row.LastMessageTime.Unix(),
			UnreadCount:    int64(row.UnreadCount),
		}
		if user, err := s.userRepo.GetByID(ctx, otherID); err == nil && user != nil {
			item.Username = user.Username
			item.Avatar = user.Avatar
			item.Email = user.Email
		}
		result = append(result, item)
	}
	return result, nil
}

// ==================== 消息 ====================

// ListMessages 会话消息
// 读取即把对方发来的未读消息置已读
func (s *MessageService) ListMessages(ctx context.Context, userID, conversationID int64) ([]dto.MessageResp, error) {
	conv, err := s.getOwnConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.msgRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.msgRepo.MarkRead(ctx, conv.ID, userID); err != nil {
		return nil, err
	}

	result := make([]dto.MessageResp, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, dto.MessageResp{
			ID:            m.ID,
			Content:       m.Content,
			Time:          m.CreatedAt.Unix(),
			IsMe:          m.SenderID == userID,
			Type:          m.Type,
			ImageURL:      m.ImageURL,
			VoiceURL:      m.VoiceURL,
			VoiceDuration: m.VoiceDuration,
			VideoURL:      m.VideoURL,
		})
	}
	return result, nil
}

// SendMessage 发消息
func (s *MessageService) SendMessage(ctx context.Context, userID int64, req *dto.SendMessageReq) (*dto.MessageResp, error) {
	conv, err := s.getOwnConversation(ctx, userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	msgType := req.Type
	if msgType == "" {
		msgType = model.MessageTypeText
	}
	switch msgType {
	case model.MessageTypeText, model.MessageTypeImage, model.MessageTypeVoice, model.MessageTypeVideo:
	default:
		return nil, ErrInvalidMessageType
	}

	msg := &model.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        req.Content,
		Type:           msgType,
		ImageURL:       req.ImageURL,
		VoiceURL:       req.VoiceURL,
		VoiceDuration:  req.VoiceDuration,
		VideoURL:       req.VideoURL,
	}
	err = s.uow.Transaction(ctx, func(uow *repository.MessageUnitOfWork) error {
		if err := uow.Messages.Create(ctx, msg); err != nil {
			return err
		}
		return uow.Conversations.Touch(ctx, conv.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyReceiver(conv, msg)

	return &dto.MessageResp{
		ID:            msg.ID,
		Content:       msg.Content,
		Time:          msg.CreatedAt.Unix(),
		IsMe:          true,
		Type:          msg.Type,
		ImageURL:      msg.ImageURL,
		VoiceURL:      msg.VoiceURL,
		VoiceDuration: msg.VoiceDuration,
		VideoURL:      msg.VideoURL,
	}, nil
}

// ==================== 辅助方法 ====================

// getOwnConversation 取本人参与的会话，外人视同不存在
func (s *MessageService) getOwnConversation(ctx context.Context, userID, conversationID int64) (*model.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil || (conv.User1ID != userID && conv.User2ID != userID) {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// notifyReceiver 给接收方写一条消息通知，失败只记日志
func (s *MessageService) notifyReceiver(conv *model.Conversation, msg *model.Message) {
	ctx := context.Background()

	sender, err := s.userRepo.GetByID(ctx, msg.SenderID)
	if err != nil || sender == nil {
		return
	}

	preview := msg.Content
	switch msg.Type {
	case model.MessageTypeImage:
		preview = "[图片]"
	case model.MessageTypeVoice:
		preview = "[语音]"
	case model.MessageTypeVideo:
		preview = "[视频]"
	}
	if utf8.RuneCountInString(preview) > messagePreviewRunes {
		runes := []rune(preview)
		preview = string(runes[:messagePreviewRunes]) + "..."
	}

	convID := conv.ID
	notif := &model.Notification{
		UserID:      conv.OtherUserID(msg.SenderID),
		Type:        model.NotificationTypeMessage,
		Title:       fmt.Sprintf("💬 %s", sender.Username),
		Content:     preview,
		RelatedID:   &convID,
		RelatedType: "conversation",
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		s.log.Warn().Err(err).Int64("conversation_id", conv.ID).Msg("写入消息通知失败")
	}
}

// ==================== 错误定义 ====================

var (
	ErrSelfConversation     = errors.New("不能和自己建会话")
	ErrConversationNotFound = errors.New("会话不存在")
	ErrInvalidMessageType   = errors.New("消息类型不合法")
)
