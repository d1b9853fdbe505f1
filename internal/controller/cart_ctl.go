package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// CartController 购物车接口
type CartController struct {
	cartService *service.CartService
}

// NewCartController 创建购物车接口
func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart 购物车内容
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", cart)
}

// AddItem 加购
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req dto.AddCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "菜品ID不能为空")
		return
	}

	if err := ctrl.cartService.AddItem(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "已加入购物车", nil)
}

// UpdateItem 改数量，数量归零即删行
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "菜品ID不能为空")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", nil)
}

// RemoveItem 移除菜品
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Query("dish_id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	if err := ctrl.cartService.RemoveItem(c.Request.Context(), middleware.GetUserID(c), dishID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "移除成功", nil)
}

// Clear 清空购物车
func (ctrl *CartController) Clear(c *gin.Context) {
	if err := ctrl.cartService.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "购物车已清空", nil)
}
