package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车服务
// 购物车只存菜品和数量，金额读取时按菜品现价实时计算
type CartService struct {
	cartRepo repository.CartRepository
	dishRepo repository.DishRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, dishRepo repository.DishRepository) *CartService {
	return &CartService{cartRepo: cartRepo, dishRepo: dishRepo}
}

// AddItem 加购，同一菜品重复加购数量累加
func (s *CartService) AddItem(ctx context.Context, userID int64, req *dto.AddCartItemReq) error {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	dish, err := s.dishRepo.GetByID(ctx, req.DishID)
	if err != nil {
		return err
	}
	if dish == nil || dish.Status != model.DishStatusAvailable {
		return ErrDishNotAvailable
	}

	return s.cartRepo.Upsert(ctx, &model.CartItem{
		UserID:   userID,
		DishID:   req.DishID,
		Quantity: quantity,
	})
}

// GetCart 购物车内容
// 已下架或已删除的菜品行直接跳过，不计入金额
func (s *CartService) GetCart(ctx context.Context, userID int64) (*dto.CartResp, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CartResp{Items: []dto.CartItemResp{}}
	total := decimal.Zero
	for _, item := range items {
		dish, err := s.dishRepo.GetByID(ctx, item.DishID)
		if err != nil {
			return nil, err
		}
		if dish == nil || dish.Status != model.DishStatusAvailable {
			continue
		}

		price, _ := dish.Price.Float64()
		resp.Items = append(resp.Items, dto.CartItemResp{
			DishID:      item.DishID,
			Quantity:    item.Quantity,
			Name:        dish.Name,
			Price:       price,
			ImageURL:    dish.ImageURL,
			Description: dish.Description,
		})
		resp.TotalQuantity += item.Quantity
		total = total.Add(dish.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	resp.TotalAmount, _ = total.Float64()
	return resp, nil
}

// UpdateQuantity 覆盖数量，数量归零即删行
func (s *CartService) UpdateQuantity(ctx context.Context, userID int64, req *dto.UpdateCartItemReq) error {
	if req.Quantity <= 0 {
		_, err := s.cartRepo.Remove(ctx, userID, req.DishID)
		return err
	}

	rows, err := s.cartRepo.UpdateQuantity(ctx, userID, req.DishID, req.Quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 移除菜品
func (s *CartService) RemoveItem(ctx context.Context, userID, dishID int64) error {
	rows, err := s.cartRepo.Remove(ctx, userID, dishID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	_, err := s.cartRepo.Clear(ctx, userID)
	return err
}

// ==================== 错误定义 ====================

var (
	ErrDishNotAvailable = errors.New("菜品不存在或已下架")
	ErrCartItemNotFound = errors.New("购物车中没有该菜品")
)
