package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// CustomerController 扫码顾客接口，全部免登录
type CustomerController struct {
	userService  *service.UserService
	dishService  *service.DishService
	orderService *service.OrderService
}

// NewCustomerController 创建顾客接口
func NewCustomerController(userService *service.UserService, dishService *service.DishService, orderService *service.OrderService) *CustomerController {
	return &CustomerController{userService: userService, dishService: dishService, orderService: orderService}
}

// CreateSession 扫码建临时会话
func (ctrl *CustomerController) CreateSession(c *gin.Context) {
	var req dto.GuestSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "桌号不能为空")
		return
	}

	session, err := ctrl.userService.GuestSession(c.Request.Context(), req.TableID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "会话创建成功", session)
}

// GetMenu 顾客菜单，只含上架菜品
func (ctrl *CustomerController) GetMenu(c *gin.Context) {
	dishes, err := ctrl.dishService.ListMenu(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"dishes": dishes})
}

// CreateOrder 扫码匿名下单
func (ctrl *CustomerController) CreateOrder(c *gin.Context) {
	var req dto.GuestOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "桌号和菜品不能为空")
		return
	}

	summary, err := ctrl.orderService.CreateGuestOrder(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "下单成功", summary)
}

// GetOrderStatus 匿名查单，无归属校验
func (ctrl *CustomerController) GetOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的订单ID")
		return
	}

	detail, err := ctrl.orderService.GetDetail(c.Request.Context(), orderID, 0, true)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", detail)
}
