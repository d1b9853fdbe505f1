package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

const testShopID = int64(1)

func setupDishTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Dish{}, &model.DishReview{}, &model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newDishService(db *gorm.DB) *DishService {
	return NewDishService(
		repository.NewDishRepository(db),
		repository.NewDishReviewRepository(db),
		testShopID,
	)
}

func TestDishService_CreateDish(t *testing.T) {
	svc := newDishService(setupDishTestDB(t))
	ctx := context.Background()

	resp, err := svc.CreateDish(ctx, &dto.CreateDishReq{
		Name:     "宫保鸡丁",
		Price:    32.5,
		Category: "热菜",
	})
	if err != nil {
		t.Fatalf("创建菜品失败: %v", err)
	}
	if resp.Status != model.DishStatusAvailable {
		t.Errorf("缺省 status = %s, want available", resp.Status)
	}
	if resp.Price != 32.5 {
		t.Errorf("price = %v, want 32.5", resp.Price)
	}

	// 非法状态被拒
	_, err = svc.CreateDish(ctx, &dto.CreateDishReq{Name: "x", Price: 1, Status: "sold_out"})
	if !errors.Is(err, ErrInvalidDishStatus) {
		t.Errorf("非法状态 err = %v, want ErrInvalidDishStatus", err)
	}
}

func TestDishService_ListMenuFiltersUnavailable(t *testing.T) {
	db := setupDishTestDB(t)
	svc := newDishService(db)
	ctx := context.Background()

	svc.CreateDish(ctx, &dto.CreateDishReq{Name: "在售菜", Price: 10})
	svc.CreateDish(ctx, &dto.CreateDishReq{Name: "下架菜", Price: 12, Status: model.DishStatusUnavailable})

	menu, err := svc.ListMenu(ctx)
	if err != nil {
		t.Fatalf("查询菜单失败: %v", err)
	}
	if len(menu) != 1 || menu[0].Name != "在售菜" {
		t.Errorf("menu = %+v, want 只含在售菜", menu)
	}

	// 商家列表含下架菜
	all, err := svc.ListDishes(ctx)
	if err != nil {
		t.Fatalf("查询商家菜品失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("商家菜品数 = %d, want 2", len(all))
	}
}

func TestDishService_UpdateDish(t *testing.T) {
	db := setupDishTestDB(t)
	svc := newDishService(db)
	ctx := context.Background()

	created, _ := svc.CreateDish(ctx, &dto.CreateDishReq{Name: "原名", Price: 20})

	badPrice := -1.0
	_, err := svc.UpdateDish(ctx, created.ID, &dto.UpdateDishReq{Price: &badPrice})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("负价格 err = %v, want ErrInvalidPrice", err)
	}

	newName := "新名"
	newPrice := 25.0
	updated, err := svc.UpdateDish(ctx, created.ID, &dto.UpdateDishReq{Name: &newName, Price: &newPrice})
	if err != nil {
		t.Fatalf("更新菜品失败: %v", err)
	}
	if updated.Name != "新名" || updated.Price != 25.0 {
		t.Errorf("updated = %+v, want 新名/25", updated)
	}

	// 他店菜品视同不存在
	db.Create(&model.Dish{ShopID: 99, Name: "他店菜", Price: decimal.NewFromInt(10), Status: model.DishStatusAvailable})
	var foreign model.Dish
	db.Where("shop_id = ?", 99).First(&foreign)
	_, err = svc.UpdateDish(ctx, foreign.ID, &dto.UpdateDishReq{Name: &newName})
	if !errors.Is(err, ErrDishNotFound) {
		t.Errorf("他店菜品 err = %v, want ErrDishNotFound", err)
	}
}

func TestDishService_RatingEnrichment(t *testing.T) {
	db := setupDishTestDB(t)
	svc := newDishService(db)
	reviewSvc := NewDishReviewService(
		repository.NewDishReviewRepository(db),
		repository.NewDishRepository(db),
		repository.NewUserRepository(db),
	)
	ctx := context.Background()

	db.Create(&model.User{Username: "食客", Password: "x"})
	created, _ := svc.CreateDish(ctx, &dto.CreateDishReq{Name: "招牌菜", Price: 30})

	if _, err := reviewSvc.CreateReview(ctx, 1, created.ID, &dto.CreateReviewReq{Rating: 5, Content: "好吃"}); err != nil {
		t.Fatalf("创建评价失败: %v", err)
	}

	dish, err := svc.GetDish(ctx, created.ID)
	if err != nil {
		t.Fatalf("查询菜品失败: %v", err)
	}
	if dish.Rating != 5 || dish.ReviewCount != 1 {
		t.Errorf("rating = %v (%d 条), want 5 (1 条)", dish.Rating, dish.ReviewCount)
	}

	// 同一用户再评是覆盖
	if _, err := reviewSvc.CreateReview(ctx, 1, created.ID, &dto.CreateReviewReq{Rating: 3, Content: "一般"}); err != nil {
		t.Fatalf("覆盖评价失败: %v", err)
	}
	dish, _ = svc.GetDish(ctx, created.ID)
	if dish.Rating != 3 || dish.ReviewCount != 1 {
		t.Errorf("覆盖后 rating = %v (%d 条), want 3 (1 条)", dish.Rating, dish.ReviewCount)
	}

	// 打分越界被拒
	_, err = reviewSvc.CreateReview(ctx, 1, created.ID, &dto.CreateReviewReq{Rating: 6, Content: "x"})
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("越界打分 err = %v, want ErrInvalidRating", err)
	}
}
