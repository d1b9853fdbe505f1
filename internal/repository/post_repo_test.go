package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/model"
)

func setupPostTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Post{}, &model.PostLike{}, &model.Comment{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestPostRepository_IncrLikesClampsAtZero(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &model.Post{UserID: 1, Title: "t", Content: "c"}
	repo.Create(ctx, post)

	if err := repo.IncrLikes(ctx, post.ID, 1); err != nil {
		t.Fatalf("递增点赞数失败: %v", err)
	}
	// 连续递减两次也不会出现负数
	repo.IncrLikes(ctx, post.ID, -1)
	if err := repo.IncrLikes(ctx, post.ID, -1); err != nil {
		t.Fatalf("递减点赞数失败: %v", err)
	}

	got, _ := repo.GetByID(ctx, post.ID)
	if got.Likes != 0 {
		t.Errorf("likes = %d, want 0", got.Likes)
	}
}

func TestPostRepository_LikedPostIDs(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p1 := &model.Post{UserID: 1, Content: "a"}
	p2 := &model.Post{UserID: 1, Content: "b"}
	p3 := &model.Post{UserID: 1, Content: "c"}
	repo.Create(ctx, p1)
	repo.Create(ctx, p2)
	repo.Create(ctx, p3)

	repo.CreateLike(ctx, &model.PostLike{UserID: 9, PostID: p1.ID})
	repo.CreateLike(ctx, &model.PostLike{UserID: 9, PostID: p3.ID})
	repo.CreateLike(ctx, &model.PostLike{UserID: 8, PostID: p2.ID})

	liked, err := repo.LikedPostIDs(ctx, 9, []int64{p1.ID, p2.ID, p3.ID})
	if err != nil {
		t.Fatalf("批量查询点赞状态失败: %v", err)
	}
	if !liked[p1.ID] || liked[p2.ID] || !liked[p3.ID] {
		t.Errorf("liked = %v, want {%d, %d}", liked, p1.ID, p3.ID)
	}
}

func TestPostRepository_DeleteOnlyOwn(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &model.Post{UserID: 1, Content: "mine"}
	repo.Create(ctx, post)

	// 他人删除不生效
	rows, err := repo.Delete(ctx, post.ID, 2)
	if err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if rows != 0 {
		t.Errorf("他人删除影响行数 = %d, want 0", rows)
	}

	rows, err = repo.Delete(ctx, post.ID, 1)
	if err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("本人删除影响行数 = %d, want 1", rows)
	}
}
