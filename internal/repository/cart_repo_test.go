package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/model"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.CartItem{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func TestCartRepository_UpsertAccumulates(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &model.CartItem{UserID: 1, DishID: 10, Quantity: 2}); err != nil {
		t.Fatalf("首次加购失败: %v", err)
	}
	// 同一菜品重复加购，数量累加而不是覆盖
	if err := repo.Upsert(ctx, &model.CartItem{UserID: 1, DishID: 10, Quantity: 3}); err != nil {
		t.Fatalf("重复加购失败: %v", err)
	}

	item, err := repo.GetByUserAndDish(ctx, 1, 10)
	if err != nil {
		t.Fatalf("查询购物车行失败: %v", err)
	}
	if item == nil {
		t.Fatal("购物车行不存在")
	}
	if item.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", item.Quantity)
	}

	var count int64
	db.Model(&model.CartItem{}).Count(&count)
	if count != 1 {
		t.Errorf("行数 = %d, want 1", count)
	}
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	repo.Upsert(ctx, &model.CartItem{UserID: 1, DishID: 10, Quantity: 2})

	rows, err := repo.UpdateQuantity(ctx, 1, 10, 7)
	if err != nil {
		t.Fatalf("更新数量失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("影响行数 = %d, want 1", rows)
	}

	item, _ := repo.GetByUserAndDish(ctx, 1, 10)
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", item.Quantity)
	}

	// 不存在的行返回 0 影响行数，不报错
	rows, err = repo.UpdateQuantity(ctx, 1, 999, 1)
	if err != nil {
		t.Fatalf("更新不存在的行失败: %v", err)
	}
	if rows != 0 {
		t.Errorf("影响行数 = %d, want 0", rows)
	}
}

func TestCartRepository_RemoveAndClear(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	repo.Upsert(ctx, &model.CartItem{UserID: 1, DishID: 10, Quantity: 1})
	repo.Upsert(ctx, &model.CartItem{UserID: 1, DishID: 11, Quantity: 1})
	repo.Upsert(ctx, &model.CartItem{UserID: 2, DishID: 10, Quantity: 1})

	rows, err := repo.Remove(ctx, 1, 10)
	if err != nil {
		t.Fatalf("移除失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("影响行数 = %d, want 1", rows)
	}

	rows, err = repo.Clear(ctx, 1)
	if err != nil {
		t.Fatalf("清空失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("清空影响行数 = %d, want 1", rows)
	}

	// 只清自己的，不动别人的购物车
	items, _ := repo.ListByUser(ctx, 2)
	if len(items) != 1 {
		t.Errorf("用户 2 的购物车行数 = %d, want 1", len(items))
	}
}
