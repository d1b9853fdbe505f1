package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/model"
)

func setupMessageTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Conversation{}, &model.Message{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestConversationRepository_GetByUsersBidirectional(t *testing.T) {
	db := setupMessageTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv := &model.Conversation{User1ID: 1, User2ID: 2}
	repo.Create(ctx, conv)

	// 两个方向都能命中同一条会话
	found, err := repo.GetByUsers(ctx, 1, 2)
	if err != nil || found == nil {
		t.Fatalf("正向查询失败: %v, %+v", err, found)
	}
	reversed, err := repo.GetByUsers(ctx, 2, 1)
	if err != nil || reversed == nil {
		t.Fatalf("反向查询失败: %v, %+v", err, reversed)
	}
	if found.ID != reversed.ID {
		t.Errorf("两个方向命中了不同会话: %d vs %d", found.ID, reversed.ID)
	}
}

func TestConversationRepository_ListByUserMeta(t *testing.T) {
	db := setupMessageTestDB(t)
	convRepo := NewConversationRepository(db)
	msgRepo := NewMessageRepository(db)
	ctx := context.Background()

	conv := &model.Conversation{User1ID: 1, User2ID: 2}
	convRepo.Create(ctx, conv)

	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 2, Content: "第一条", Type: model.MessageTypeText})
	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 2, Content: "第二条", Type: model.MessageTypeText})
	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 1, Content: "我的回复", Type: model.MessageTypeText})

	list, err := convRepo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("查询会话列表失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("会话数 = %d, want 1", len(list))
	}

	// 最近一条消息是自己发的回复；未读数只统计对方发来的
	if list[0].LastMessage != "我的回复" {
		t.Errorf("last_message = %q, want 我的回复", list[0].LastMessage)
	}
	if list[0].UnreadCount != 2 {
		t.Errorf("unread_count = %d, want 2", list[0].UnreadCount)
	}
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db := setupMessageTestDB(t)
	convRepo := NewConversationRepository(db)
	msgRepo := NewMessageRepository(db)
	ctx := context.Background()

	conv := &model.Conversation{User1ID: 1, User2ID: 2}
	convRepo.Create(ctx, conv)

	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 2, Content: "a"})
	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 2, Content: "b"})
	msgRepo.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: 1, Content: "c"})

	// 用户 1 已读：只置位对方发的消息
	rows, err := msgRepo.MarkRead(ctx, conv.ID, 1)
	if err != nil {
		t.Fatalf("标记已读失败: %v", err)
	}
	if rows != 2 {
		t.Errorf("已读影响行数 = %d, want 2", rows)
	}

	unread, err := msgRepo.CountUnread(ctx, conv.ID, 1)
	if err != nil {
		t.Fatalf("统计未读失败: %v", err)
	}
	if unread != 0 {
		t.Errorf("未读数 = %d, want 0", unread)
	}
}
