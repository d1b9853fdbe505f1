package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// PaymentController 支付接口
type PaymentController struct {
	paymentService *service.PaymentService
}

// NewPaymentController 创建支付接口
func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreateWechatOrder 创建微信预支付单
func (ctrl *PaymentController) CreateWechatOrder(c *gin.Context) {
	var req dto.CreateWechatOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "订单ID和金额不能为空")
		return
	}

	prepay, err := ctrl.paymentService.CreateWechatOrder(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "预支付单创建成功", prepay)
}

// WechatNotify 微信支付回调，应答 XML 报文
func (ctrl *PaymentController) WechatNotify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusOK, "<xml><return_code><![CDATA[FAIL]]></return_code><return_msg><![CDATA[read error]]></return_msg></xml>")
		return
	}

	ack := ctrl.paymentService.HandleWechatNotify(c.Request.Context(), body)
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, ack)
}

// VerifyHuaweiPurchase 华为内购凭证校验
func (ctrl *PaymentController) VerifyHuaweiPurchase(c *gin.Context) {
	var req dto.VerifyHuaweiPurchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "凭证和商品ID不能为空")
		return
	}

	if err := ctrl.paymentService.VerifyHuaweiPurchase(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "验证成功", nil)
}

// GetOrderStatus 订单支付状态
func (ctrl *PaymentController) GetOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Query("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的订单ID")
		return
	}

	status, err := ctrl.paymentService.QueryStatus(c.Request.Context(), orderID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", status)
}
