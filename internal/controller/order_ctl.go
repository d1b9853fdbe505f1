package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// OrderController 订单接口
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单接口
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ==================== 下单 ====================

// CreateOrder 结算购物车下单
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求数据格式错误")
		return
	}

	summary, err := ctrl.orderService.CreateFromCart(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "下单成功", summary)
}

// CreateH5Order H5 网页按桌号下单
func (ctrl *OrderController) CreateH5Order(c *gin.Context) {
	var req dto.H5OrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请选择菜品")
		return
	}

	summary, err := ctrl.orderService.CreateH5Order(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "下单成功", summary)
}

// ==================== 查询 ====================

// ListOrders 订单列表，商家看全店，用户看自己的
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var (
		orders []dto.OrderListItemResp
		err    error
	)
	if middleware.GetUserType(c) == model.UserTypeMerchant {
		orders, err = ctrl.orderService.ListShopOrders(ctx, limit)
	} else {
		orders, err = ctrl.orderService.ListUserOrders(ctx, middleware.GetUserID(c), limit)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"orders": orders})
}

// GetOrder 订单详情
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的订单ID")
		return
	}

	isMerchant := middleware.GetUserType(c) == model.UserTypeMerchant
	detail, err := ctrl.orderService.GetDetail(c.Request.Context(), orderID, middleware.GetUserID(c), isMerchant)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", detail)
}

// GetSalesStats 个人销售统计
func (ctrl *OrderController) GetSalesStats(c *gin.Context) {
	stats, err := ctrl.orderService.GetSalesStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", stats)
}

// ==================== 状态流转 ====================

// PayOrder 支付自己的待支付订单
func (ctrl *OrderController) PayOrder(c *gin.Context) {
	var req dto.PayOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "订单ID不能为空")
		return
	}

	if err := ctrl.orderService.Pay(c.Request.Context(), middleware.GetUserID(c), req.OrderID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "支付成功", nil)
}

// UpdateStatus 更新订单状态，商家改全店，用户只能改自己的单
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的订单ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "状态不能为空")
		return
	}

	isMerchant := middleware.GetUserType(c) == model.UserTypeMerchant
	if err := ctrl.orderService.UpdateStatus(c.Request.Context(), orderID, middleware.GetUserID(c), isMerchant, req.Status); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", nil)
}
