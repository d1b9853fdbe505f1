package service

import (
	"context"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// 店铺默认资料，首次访问时落库
const (
	defaultShopName  = "食光记"
	defaultShopScore = 4.8
)

// ShopService 店铺服务（单店部署，shopID 来自配置）
type ShopService struct {
	shopRepo       repository.ShopRepository
	shopID         int64
	merchantUserID int64
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository, shopID, merchantUserID int64) *ShopService {
	return &ShopService{shopRepo: shopRepo, shopID: shopID, merchantUserID: merchantUserID}
}

// GetInfo 店铺信息，附当日订单数和营业额
// 店铺记录不存在时先写入默认资料再返回
func (s *ShopService) GetInfo(ctx context.Context) (*dto.ShopInfoResp, error) {
	shop, err := s.shopRepo.GetByID(ctx, s.shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		shop = &model.Shop{
			BaseModel:     model.BaseModel{ID: s.shopID},
			UserID:        s.merchantUserID,
			ShopName:      defaultShopName,
			Description:   "用心做好每一道菜",
			BusinessHours: "10:00-22:00",
		}
		if err := s.shopRepo.Upsert(ctx, shop); err != nil {
			return nil, err
		}
	}

	stats, err := s.shopRepo.TodayStats(ctx, s.shopID)
	if err != nil {
		return nil, err
	}

	revenue, _ := stats.Revenue.Float64()
	return &dto.ShopInfoResp{
		ID:            shop.ID,
		ShopName:      shop.ShopName,
		Name:          shop.ShopName,
		Description:   shop.Description,
		BusinessHours: shop.BusinessHours,
		Address:       shop.Address,
		Phone:         shop.Phone,
		Score:         defaultShopScore,
		TodayOrders:   stats.Orders,
		TodayRevenue:  revenue,
	}, nil
}

// UpdateInfo 更新店铺资料，空字段不动
func (s *ShopService) UpdateInfo(ctx context.Context, name, description, address, phone, businessHours string) (*dto.ShopInfoResp, error) {
	shop, err := s.shopRepo.GetByID(ctx, s.shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		shop = &model.Shop{
			BaseModel: model.BaseModel{ID: s.shopID},
			UserID:    s.merchantUserID,
			ShopName:  defaultShopName,
		}
	}

	if name != "" {
		shop.ShopName = name
	}
	if description != "" {
		shop.Description = description
	}
	if address != "" {
		shop.Address = address
	}
	if phone != "" {
		shop.Phone = phone
	}
	if businessHours != "" {
		shop.BusinessHours = businessHours
	}

	if err := s.shopRepo.Upsert(ctx, shop); err != nil {
		return nil, err
	}
	return s.GetInfo(ctx)
}
