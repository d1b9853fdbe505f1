package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

func setupMessageSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.Conversation{}, &model.Message{}, &model.User{}, &model.Notification{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(
		repository.NewMessageUnitOfWork(db),
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		zerolog.Nop(),
	)
}

func TestMessageService_GetOrCreateConversation(t *testing.T) {
	db := setupMessageSvcTestDB(t)
	svc := newMessageService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "甲", Password: "x"})
	db.Create(&model.User{Username: "乙", Password: "x"})

	if _, _, err := svc.GetOrCreateConversation(ctx, 1, 1); !errors.Is(err, ErrSelfConversation) {
		t.Errorf("自会话 err = %v, want ErrSelfConversation", err)
	}
	if _, _, err := svc.GetOrCreateConversation(ctx, 1, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("与不存在的人会话 err = %v, want ErrUserNotFound", err)
	}

	first, isNew, err := svc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}
	if !isNew {
		t.Error("首次获取 is_new = false, want true")
	}
	// 反方向命中同一条会话，且不再标记为新建
	second, isNew, err := svc.GetOrCreateConversation(ctx, 2, 1)
	if err != nil {
		t.Fatalf("反向获取会话失败: %v", err)
	}
	if first != second {
		t.Errorf("两个方向得到不同会话: %d vs %d", first, second)
	}
	if isNew {
		t.Error("第二次获取 is_new = true, want false")
	}
}

func TestMessageService_SendAndRead(t *testing.T) {
	db := setupMessageSvcTestDB(t)
	svc := newMessageService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "甲", Password: "x"})
	db.Create(&model.User{Username: "乙", Password: "x"})
	convID, _, _ := svc.GetOrCreateConversation(ctx, 1, 2)

	if _, err := svc.SendMessage(ctx, 1, &dto.SendMessageReq{
		ConversationID: convID,
		Content:        "订单好了吗",
	}); err != nil {
		t.Fatalf("发消息失败: %v", err)
	}

	// 外人不能往会话里发消息
	_, err := svc.SendMessage(ctx, 3, &dto.SendMessageReq{ConversationID: convID, Content: "路过"})
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("外人发消息 err = %v, want ErrConversationNotFound", err)
	}

	// 非法消息类型被拒
	_, err = svc.SendMessage(ctx, 1, &dto.SendMessageReq{ConversationID: convID, Content: "x", Type: "sticker"})
	if !errors.Is(err, ErrInvalidMessageType) {
		t.Errorf("非法类型 err = %v, want ErrInvalidMessageType", err)
	}

	// 接收方会话列表有 1 条未读
	convs, err := svc.ListConversations(ctx, 2)
	if err != nil {
		t.Fatalf("查询会话列表失败: %v", err)
	}
	if len(convs) != 1 || convs[0].UnreadCount != 1 {
		t.Fatalf("convs = %+v, want 1 条未读", convs)
	}
	if convs[0].Username != "甲" {
		t.Errorf("对方用户名 = %s, want 甲", convs[0].Username)
	}

	// 拉取消息即已读
	msgs, err := svc.ListMessages(ctx, 2, convID)
	if err != nil {
		t.Fatalf("拉取消息失败: %v", err)
	}
	if len(msgs) != 1 || msgs[0].IsMe {
		t.Errorf("msgs = %+v, want 1 条对方消息", msgs)
	}

	convs, _ = svc.ListConversations(ctx, 2)
	if convs[0].UnreadCount != 0 {
		t.Errorf("已读后 unread = %d, want 0", convs[0].UnreadCount)
	}
}

func TestMessageService_NotificationPreview(t *testing.T) {
	db := setupMessageSvcTestDB(t)
	svc := newMessageService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "甲", Password: "x"})
	db.Create(&model.User{Username: "乙", Password: "x"})
	convID, _, _ := svc.GetOrCreateConversation(ctx, 1, 2)

	long := strings.Repeat("长", 60)
	svc.SendMessage(ctx, 1, &dto.SendMessageReq{ConversationID: convID, Content: long})

	var notif model.Notification
	if err := db.Where("user_id = ? AND type = ?", 2, model.NotificationTypeMessage).First(&notif).Error; err != nil {
		t.Fatalf("消息通知缺失: %v", err)
	}
	// 超长内容按 50 个字截断
	want := strings.Repeat("长", 50) + "..."
	if notif.Content != want {
		t.Errorf("通知预览 = %q, want 50 字 + 省略号", notif.Content)
	}
	if notif.Title != "💬 甲" {
		t.Errorf("通知标题 = %q", notif.Title)
	}

	// 图片消息的预览是占位符
	svc.SendMessage(ctx, 1, &dto.SendMessageReq{
		ConversationID: convID,
		Content:        "image",
		Type:           model.MessageTypeImage,
		ImageURL:       "/img/a.jpg",
	})
	var imgNotif model.Notification
	db.Where("user_id = ? AND type = ?", 2, model.NotificationTypeMessage).
		Order("id DESC").First(&imgNotif)
	if imgNotif.Content != "[图片]" {
		t.Errorf("图片消息预览 = %q, want [图片]", imgNotif.Content)
	}
}
