package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== DishService 菜品服务 ====================

// DishService 菜品服务（单店部署，shopID 来自配置）
type DishService struct {
	dishRepo   repository.DishRepository
	reviewRepo repository.DishReviewRepository
	shopID     int64
}

// NewDishService 创建菜品服务
func NewDishService(dishRepo repository.DishRepository, reviewRepo repository.DishReviewRepository, shopID int64) *DishService {
	return &DishService{dishRepo: dishRepo, reviewRepo: reviewRepo, shopID: shopID}
}

// ==================== 商家侧 ====================

// CreateDish 创建菜品
func (s *DishService) CreateDish(ctx context.Context, req *dto.CreateDishReq) (*dto.DishResp, error) {
	status := req.Status
	if status == "" {
		status = model.DishStatusAvailable
	}
	if status != model.DishStatusAvailable && status != model.DishStatusUnavailable {
		return nil, ErrInvalidDishStatus
	}

	dish := &model.Dish{
		ShopID:        s.shopID,
		Name:          req.Name,
		Description:   req.Description,
		CookingMethod: req.CookingMethod,
		Price:         decimal.NewFromFloat(req.Price),
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		IsRecommended: req.IsRecommended,
		Status:        status,
	}
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return nil, err
	}
	return s.toDishResp(dish, repository.DishRatingStat{}), nil
}

// UpdateDish 更新菜品，nil 字段不动
func (s *DishService) UpdateDish(ctx context.Context, dishID int64, req *dto.UpdateDishReq) (*dto.DishResp, error) {
	dish, err := s.getOwnDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CookingMethod != nil {
		fields["cooking_method"] = *req.CookingMethod
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		fields["price"] = decimal.NewFromFloat(*req.Price)
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.IsRecommended != nil {
		fields["is_recommended"] = *req.IsRecommended
	}
	if req.Status != nil {
		if *req.Status != model.DishStatusAvailable && *req.Status != model.DishStatusUnavailable {
			return nil, ErrInvalidDishStatus
		}
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	if err := s.dishRepo.Update(ctx, dish.ID, fields); err != nil {
		return nil, err
	}
	return s.GetDish(ctx, dishID)
}

// DeleteDish 删除菜品
// 历史订单行持有名称/价格快照，不受删除影响
func (s *DishService) DeleteDish(ctx context.Context, dishID int64) error {
	if _, err := s.getOwnDish(ctx, dishID); err != nil {
		return err
	}
	rows, err := s.dishRepo.Delete(ctx, dishID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDishNotFound
	}
	return nil
}

// ListDishes 商家菜品列表（含下架）
func (s *DishService) ListDishes(ctx context.Context) ([]dto.DishResp, error) {
	dishes, err := s.dishRepo.ListByShop(ctx, s.shopID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, dishes)
}

// ==================== 顾客侧 ====================

// ListMenu 顾客菜单，只含上架菜品
func (s *DishService) ListMenu(ctx context.Context) ([]dto.DishResp, error) {
	dishes, err := s.dishRepo.ListAvailable(ctx, s.shopID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, dishes)
}

// GetDish 菜品详情
func (s *DishService) GetDish(ctx context.Context, dishID int64) (*dto.DishResp, error) {
	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}

	stats, err := s.reviewRepo.RatingStats(ctx, []int64{dishID})
	if err != nil {
		return nil, err
	}
	return s.toDishResp(dish, stats[dishID]), nil
}

// ==================== 辅助方法 ====================

// getOwnDish 取归属本店的菜品，不归属视同不存在
func (s *DishService) getOwnDish(ctx context.Context, dishID int64) (*model.Dish, error) {
	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil || dish.ShopID != s.shopID {
		return nil, ErrDishNotFound
	}
	return dish, nil
}

// enrich 批量附加评分聚合
func (s *DishService) enrich(ctx context.Context, dishes []model.Dish) ([]dto.DishResp, error) {
	ids := make([]int64, len(dishes))
	for i, d := range dishes {
		ids[i] = d.ID
	}
	stats, err := s.reviewRepo.RatingStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DishResp, 0, len(dishes))
	for i := range dishes {
		result = append(result, *s.toDishResp(&dishes[i], stats[dishes[i].ID]))
	}
	return result, nil
}

// toDishResp 转换为 DTO
func (s *DishService) toDishResp(dish *model.Dish, stat repository.DishRatingStat) *dto.DishResp {
	price, _ := dish.Price.Float64()
	return &dto.DishResp{
		ID:            dish.ID,
		Name:          dish.Name,
		Description:   dish.Description,
		CookingMethod: dish.CookingMethod,
		Price:         price,
		ImageURL:      dish.ImageURL,
		Category:      dish.Category,
		IsRecommended: dish.IsRecommended,
		Status:        dish.Status,
		Sales:         dish.Sales,
		Rating:        stat.AvgRating,
		ReviewCount:   stat.ReviewCount,
	}
}

// ==================== 错误定义 ====================

var (
	ErrDishNotFound      = errors.New("菜品不存在")
	ErrInvalidDishStatus = errors.New("菜品状态不合法")
	ErrInvalidPrice      = errors.New("价格必须大于 0")
)
