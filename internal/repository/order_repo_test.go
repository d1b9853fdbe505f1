package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/model"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}, &model.Dish{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func seedOrder(t *testing.T, repo OrderRepository, userID *int64, status string, total string, items []model.OrderItem) int64 {
	t.Helper()
	ctx := context.Background()

	amount, _ := decimal.NewFromString(total)
	order := &model.Order{UserID: userID, ShopID: 1, TotalAmount: amount, Status: status}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("创建订单失败: %v", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := repo.CreateItems(ctx, items); err != nil {
		t.Fatalf("创建订单行失败: %v", err)
	}
	return order.ID
}

func TestOrderRepository_ListByUserWithItemCount(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	userID := int64(1)
	seedOrder(t, repo, &userID, model.OrderStatusPaid, "58.00", []model.OrderItem{
		{DishID: 1, Quantity: 2, Price: decimal.NewFromInt(20)},
		{DishID: 2, Quantity: 1, Price: decimal.NewFromInt(18)},
	})

	otherID := int64(2)
	seedOrder(t, repo, &otherID, model.OrderStatusPaid, "10.00", []model.OrderItem{
		{DishID: 1, Quantity: 1, Price: decimal.NewFromInt(10)},
	})

	orders, err := repo.ListByUser(ctx, 1, 10)
	if err != nil {
		t.Fatalf("查询用户订单失败: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("订单数 = %d, want 1", len(orders))
	}
	if orders[0].ItemCount != 3 {
		t.Errorf("item_count = %d, want 3", orders[0].ItemCount)
	}
}

func TestOrderRepository_GetItemsJoinsDish(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	db.Create(&model.Dish{ShopID: 1, Name: "红烧肉", Price: decimal.NewFromInt(38), ImageURL: "/img/hsr.jpg", Status: model.DishStatusAvailable})

	userID := int64(1)
	orderID := seedOrder(t, repo, &userID, model.OrderStatusPaid, "76.00", []model.OrderItem{
		{DishID: 1, Quantity: 2, Price: decimal.NewFromInt(38)},
		// 菜品已被删除的行，名称留空由上层兜底
		{DishID: 999, Quantity: 1, Price: decimal.NewFromInt(10)},
	})

	items, err := repo.GetItems(ctx, orderID)
	if err != nil {
		t.Fatalf("查询订单行失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("订单行数 = %d, want 2", len(items))
	}

	byDish := map[int64]OrderItemDetail{}
	for _, item := range items {
		byDish[item.DishID] = item
	}
	if byDish[1].DishName != "红烧肉" {
		t.Errorf("dish_name = %q, want 红烧肉", byDish[1].DishName)
	}
	if byDish[999].DishName != "" {
		t.Errorf("已删除菜品的 dish_name = %q, want 空", byDish[999].DishName)
	}
}

func TestOrderRepository_GetSalesStats(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	db.Create(&model.Dish{ShopID: 1, Name: "红烧肉", Price: decimal.NewFromInt(38), Status: model.DishStatusAvailable})
	db.Create(&model.Dish{ShopID: 1, Name: "清蒸鱼", Price: decimal.NewFromInt(48), Status: model.DishStatusAvailable})

	userID := int64(1)
	// 两笔已完成 + 一笔已支付，统计只看已完成
	seedOrder(t, repo, &userID, model.OrderStatusCompleted, "124.00", []model.OrderItem{
		{DishID: 1, Quantity: 2, Price: decimal.NewFromInt(38)},
		{DishID: 2, Quantity: 1, Price: decimal.NewFromInt(48)},
	})
	seedOrder(t, repo, &userID, model.OrderStatusCompleted, "38.00", []model.OrderItem{
		{DishID: 1, Quantity: 1, Price: decimal.NewFromInt(38)},
	})
	seedOrder(t, repo, &userID, model.OrderStatusPaid, "48.00", []model.OrderItem{
		{DishID: 2, Quantity: 1, Price: decimal.NewFromInt(48)},
	})

	stats, err := repo.GetSalesStats(ctx, 1, 3)
	if err != nil {
		t.Fatalf("查询销售统计失败: %v", err)
	}

	if stats.TotalOrders != 2 {
		t.Errorf("total_orders = %d, want 2", stats.TotalOrders)
	}
	if stats.TotalQuantity != 4 {
		t.Errorf("total_quantity = %d, want 4", stats.TotalQuantity)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(162)) {
		t.Errorf("total_revenue = %s, want 162", stats.TotalRevenue)
	}
	if len(stats.TopDishes) == 0 || stats.TopDishes[0].DishName != "红烧肉" {
		t.Errorf("top_dishes = %+v, want 红烧肉 居首", stats.TopDishes)
	}
	if len(stats.TopDishes) > 0 && stats.TopDishes[0].Quantity != 3 {
		t.Errorf("top 销量 = %d, want 3", stats.TopDishes[0].Quantity)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	userID := int64(1)
	orderID := seedOrder(t, repo, &userID, model.OrderStatusPending, "10.00", []model.OrderItem{
		{DishID: 1, Quantity: 1, Price: decimal.NewFromInt(10)},
	})

	rows, err := repo.UpdateStatus(ctx, orderID, model.OrderStatusPaid)
	if err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}
	if rows != 1 {
		t.Errorf("影响行数 = %d, want 1", rows)
	}

	order, _ := repo.GetByID(ctx, orderID)
	if order.Status != model.OrderStatusPaid {
		t.Errorf("status = %s, want paid", order.Status)
	}
}
