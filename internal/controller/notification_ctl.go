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

// NotificationController 通知接口
type NotificationController struct {
	notifService *service.NotificationService
}

// NewNotificationController 创建通知接口
func NewNotificationController(notifService *service.NotificationService) *NotificationController {
	return &NotificationController{notifService: notifService}
}

// List 通知列表，附未读数
func (ctrl *NotificationController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := ctrl.notifService.List(c.Request.Context(), middleware.GetUserID(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", result)
}

// UnreadCount 未读通知数
func (ctrl *NotificationController) UnreadCount(c *gin.Context) {
	count, err := ctrl.notifService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"unread_count": count})
}

// MarkRead 单条置已读
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	var req dto.MarkNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "通知ID不能为空")
		return
	}

	if err := ctrl.notifService.MarkRead(c.Request.Context(), middleware.GetUserID(c), req.NotificationID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "已标记为已读", nil)
}

// MarkAllRead 全部置已读
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	count, err := ctrl.notifService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "已全部标记为已读", gin.H{"marked_count": count})
}

// Delete 删除单条通知
func (ctrl *NotificationController) Delete(c *gin.Context) {
	var req dto.MarkNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "通知ID不能为空")
		return
	}

	if err := ctrl.notifService.Delete(c.Request.Context(), middleware.GetUserID(c), req.NotificationID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "删除成功", nil)
}
