package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// ShopController 店铺接口
type ShopController struct {
	shopService *service.ShopService
}

// NewShopController 创建店铺接口
func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// GetInfo 店铺信息，附当日订单数和营业额
func (ctrl *ShopController) GetInfo(c *gin.Context) {
	info, err := ctrl.shopService.GetInfo(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", info)
}

// UpdateInfo 更新店铺资料
func (ctrl *ShopController) UpdateInfo(c *gin.Context) {
	var req dto.UpdateShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求数据格式错误")
		return
	}

	name := req.ShopName
	if name == "" {
		name = req.Name
	}
	info, err := ctrl.shopService.UpdateInfo(c.Request.Context(), name, req.Description, req.Address, req.Phone, req.BusinessHours)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", info)
}
