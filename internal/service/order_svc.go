package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
// 下单走工作单元事务：订单头、订单行、销量递增、清购物车
// 要么全部落库要么全部回滚；通知在事务提交后尽力而为
type OrderService struct {
	uow            *repository.OrderUnitOfWork
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	dishRepo       repository.DishRepository
	tableRepo      repository.TableRepository
	notifRepo      repository.NotificationRepository
	log            zerolog.Logger
	shopID         int64
	merchantUserID int64
}

// NewOrderService 创建订单服务
func NewOrderService(
	uow *repository.OrderUnitOfWork,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	dishRepo repository.DishRepository,
	tableRepo repository.TableRepository,
	notifRepo repository.NotificationRepository,
	log zerolog.Logger,
	shopID, merchantUserID int64,
) *OrderService {
	return &OrderService{
		uow:            uow,
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		dishRepo:       dishRepo,
		tableRepo:      tableRepo,
		notifRepo:      notifRepo,
		log:            log,
		shopID:         shopID,
		merchantUserID: merchantUserID,
	}
}

// orderLine 下单时校验过的菜品行
type orderLine struct {
	dish     *model.Dish
	quantity int
}

// ==================== 下单 ====================

// CreateFromCart 结算购物车
func (s *OrderService) CreateFromCart(ctx context.Context, userID int64, req *dto.CreateOrderReq) (*dto.OrderSummaryResp, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		dish, err := s.dishRepo.GetByID(ctx, item.DishID)
		if err != nil {
			return nil, err
		}
		if dish == nil || dish.Status != model.DishStatusAvailable {
			return nil, ErrDishNotAvailable
		}
		lines = append(lines, orderLine{dish: dish, quantity: item.Quantity})
	}

	if req.TableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *req.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, ErrTableNotFound
		}
	}

	// 缺省立即支付
	status := model.OrderStatusPaid
	if req.PayNow != nil && !*req.PayNow {
		status = model.OrderStatusPending
	}

	order := &model.Order{
		UserID:  &userID,
		ShopID:  s.shopID,
		TableID: req.TableID,
		Status:  status,
		Remark:  req.Remark,
	}
	itemCount, err := s.placeOrder(ctx, order, lines, true)
	if err != nil {
		return nil, err
	}

	s.notifyMerchant(order, itemCount)

	total, _ := order.TotalAmount.Float64()
	return &dto.OrderSummaryResp{
		OrderID:     order.ID,
		TotalAmount: total,
		Status:      order.Status,
		ItemCount:   itemCount,
		CreatedAt:   order.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// CreateGuestOrder 顾客扫码匿名下单，订单不关联用户
func (s *OrderService) CreateGuestOrder(ctx context.Context, req *dto.GuestOrderReq) (*dto.OrderSummaryResp, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	table, err := s.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}

	lines := make([]orderLine, 0, len(req.Items))
	for _, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		dish, err := s.dishRepo.GetByID(ctx, item.DishID)
		if err != nil {
			return nil, err
		}
		if dish == nil || dish.Status != model.DishStatusAvailable {
			return nil, ErrDishNotAvailable
		}
		lines = append(lines, orderLine{dish: dish, quantity: quantity})
	}

	tableID := req.TableID
	order := &model.Order{
		UserID:  nil, // 匿名单
		ShopID:  s.shopID,
		TableID: &tableID,
		Status:  model.OrderStatusPaid,
		Remark:  req.Remark,
	}
	itemCount, err := s.placeOrder(ctx, order, lines, false)
	if err != nil {
		return nil, err
	}

	// 扫码下单把桌位置为使用中
	if _, err := s.tableRepo.UpdateStatus(ctx, req.TableID, model.TableStatusOccupied); err != nil {
		s.log.Warn().Err(err).Int64("table_id", req.TableID).Msg("下单后更新桌位状态失败")
	}

	s.notifyMerchant(order, itemCount)

	total, _ := order.TotalAmount.Float64()
	return &dto.OrderSummaryResp{
		OrderID:     order.ID,
		TotalAmount: total,
		Status:      order.Status,
		ItemCount:   itemCount,
		CreatedAt:   order.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// CreateH5Order H5 网页按桌号下单，桌号可缺省（外带单）
func (s *OrderService) CreateH5Order(ctx context.Context, req *dto.H5OrderReq) (*dto.OrderSummaryResp, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var tableID *int64
	if req.TableNumber != "" {
		table, err := s.tableRepo.GetByNumber(ctx, req.TableNumber)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, ErrTableNotFound
		}
		tableID = &table.ID
	}

	items := make([]dto.GuestOrderItemReq, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, dto.GuestOrderItemReq{DishID: item.DishID, Quantity: item.Quantity})
	}

	if tableID != nil {
		return s.CreateGuestOrder(ctx, &dto.GuestOrderReq{
			TableID: *tableID,
			Items:   items,
			Remark:  req.Source,
		})
	}

	// 无桌号的外带单
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		dish, err := s.dishRepo.GetByID(ctx, item.DishID)
		if err != nil {
			return nil, err
		}
		if dish == nil || dish.Status != model.DishStatusAvailable {
			return nil, ErrDishNotAvailable
		}
		lines = append(lines, orderLine{dish: dish, quantity: quantity})
	}

	order := &model.Order{
		ShopID: s.shopID,
		Status: model.OrderStatusPending,
		Remark: req.Source,
	}
	itemCount, err := s.placeOrder(ctx, order, lines, false)
	if err != nil {
		return nil, err
	}

	s.notifyMerchant(order, itemCount)

	total, _ := order.TotalAmount.Float64()
	return &dto.OrderSummaryResp{
		OrderID:     order.ID,
		TotalAmount: total,
		Status:      order.Status,
		ItemCount:   itemCount,
		CreatedAt:   order.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// placeOrder 事务内落单，返回商品件数
func (s *OrderService) placeOrder(ctx context.Context, order *model.Order, lines []orderLine, clearCart bool) (int, error) {
	total := decimal.Zero
	itemCount := 0
	for _, line := range lines {
		total = total.Add(line.dish.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
		itemCount += line.quantity
	}
	order.TotalAmount = total

	err := s.uow.Transaction(ctx, func(uow *repository.OrderUnitOfWork) error {
		if err := uow.Orders.Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			orderItems = append(orderItems, model.OrderItem{
				OrderID:  order.ID,
				DishID:   line.dish.ID,
				Quantity: line.quantity,
				Price:    line.dish.Price, // 单价快照
			})
		}
		if err := uow.Orders.CreateItems(ctx, orderItems); err != nil {
			return err
		}

		for _, line := range lines {
			if err := uow.Dishes.IncrementSales(ctx, line.dish.ID, line.quantity); err != nil {
				return err
			}
		}

		if clearCart && order.UserID != nil {
			if _, err := uow.Carts.Clear(ctx, *order.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itemCount, nil
}

// notifyMerchant 下单成功后通知商家，失败只记日志不影响主流程
func (s *OrderService) notifyMerchant(order *model.Order, itemCount int) {
	tableDesc := "到店"
	if order.TableID != nil {
		if table, err := s.tableRepo.GetByID(context.Background(), *order.TableID); err == nil && table != nil {
			tableDesc = table.TableNumber
		}
	}

	total, _ := order.TotalAmount.Float64()
	orderID := order.ID
	notif := &model.Notification{
		UserID:      s.merchantUserID,
		Type:        model.NotificationTypeOrder,
		Title:       "📋 新订单提醒",
		Content:     fmt.Sprintf("%s号桌下单，%d件商品，¥%.2f", tableDesc, itemCount, total),
		RelatedID:   &orderID,
		RelatedType: "order",
	}
	if err := s.notifRepo.Create(context.Background(), notif); err != nil {
		s.log.Warn().Err(err).Int64("order_id", order.ID).Msg("写入订单通知失败")
	}
}

// ==================== 查询 ====================

// 订单列表缺省条数
const defaultOrderListLimit = 10

// ListUserOrders 用户订单列表
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64, limit int) ([]dto.OrderListItemResp, error) {
	if limit <= 0 {
		limit = defaultOrderListLimit
	}
	orders, err := s.orderRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return s.toOrderList(orders), nil
}

// ListShopOrders 商家订单列表
func (s *OrderService) ListShopOrders(ctx context.Context, limit int) ([]dto.OrderListItemResp, error) {
	if limit <= 0 {
		limit = defaultOrderListLimit
	}
	orders, err := s.orderRepo.ListByShop(ctx, s.shopID, limit)
	if err != nil {
		return nil, err
	}
	return s.toOrderList(orders), nil
}

// GetDetail 订单详情
// 商家可看所有单；用户只能看自己的单，他人的单视同不存在
func (s *OrderService) GetDetail(ctx context.Context, orderID, viewerID int64, isMerchant bool) (*dto.OrderDetailResp, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isMerchant {
		if order.UserID == nil || *order.UserID != viewerID {
			return nil, ErrOrderNotFound
		}
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total, _ := order.TotalAmount.Float64()
	resp := &dto.OrderDetailResp{
		ID:          order.ID,
		TableID:     order.TableID,
		TotalAmount: total,
		Status:      order.Status,
		Remark:      order.Remark,
		CreatedAt:   order.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:       make([]dto.OrderItemResp, 0, len(items)),
	}
	for _, item := range items {
		price, _ := item.Price.Float64()
		name := item.DishName
		if name == "" {
			name = "已下架菜品"
		}
		resp.Items = append(resp.Items, dto.OrderItemResp{
			DishID:   item.DishID,
			DishName: name,
			ImageURL: item.ImageURL,
			Quantity: item.Quantity,
			Price:    price,
		})
	}
	return resp, nil
}

// ==================== 状态流转 ====================

// 合法状态流转表
var orderTransitions = map[string][]string{
	model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:    {model.OrderStatusCompleted, model.OrderStatusCancelled},
}

// UpdateStatus 更新订单状态
// 商家可改全店的单；用户只能改自己的单，他人的单视同不存在
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, callerID int64, isMerchant bool, status string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !isMerchant {
		if order.UserID == nil || *order.UserID != callerID {
			return ErrOrderNotFound
		}
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidOrderStatus
	}

	rows, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Pay 用户支付自己的待支付订单
func (s *OrderService) Pay(ctx context.Context, userID, orderID int64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil || order.UserID == nil || *order.UserID != userID {
		return ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return ErrOrderNotPayable
	}

	_, err = s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusPaid)
	return err
}

// ==================== 统计 ====================

// GetSalesStats 个人销售统计，只统计该用户的已完成订单
func (s *OrderService) GetSalesStats(ctx context.Context, userID int64) (*dto.SalesStatsResp, error) {
	stats, err := s.orderRepo.GetSalesStats(ctx, userID, 1)
	if err != nil {
		return nil, err
	}

	revenue, _ := stats.TotalRevenue.Float64()
	resp := &dto.SalesStatsResp{
		TotalRevenue:  revenue,
		TotalQuantity: stats.TotalQuantity,
	}
	if len(stats.TopDishes) > 0 {
		top := stats.TopDishes[0]
		resp.TopDish = &dto.TopDishResp{
			ID:        top.DishID,
			Name:      top.DishName,
			ImageURL:  top.ImageURL,
			TotalSold: top.Quantity,
		}
	}
	return resp, nil
}

// toOrderList 转换为列表 DTO
func (s *OrderService) toOrderList(orders []repository.OrderWithItemCount) []dto.OrderListItemResp {
	result := make([]dto.OrderListItemResp, 0, len(orders))
	for _, o := range orders {
		total, _ := o.TotalAmount.Float64()
		result = append(result, dto.OrderListItemResp{
			ID:          o.ID,
			TotalAmount: total,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
			ItemCount:   o.ItemCount,
		})
	}
	return result
}

// ==================== 错误定义 ====================

var (
	ErrEmptyCart          = errors.New("购物车为空")
	ErrEmptyOrder         = errors.New("订单中没有商品")
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvalidOrderStatus = errors.New("订单状态流转不合法")
	ErrOrderNotPayable    = errors.New("订单当前状态不可支付")
)
