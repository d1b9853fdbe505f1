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

// MessageController 私信接口
type MessageController struct {
	messageService *service.MessageService
}

// NewMessageController 创建私信接口
func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// ListConversations 会话列表
func (ctrl *MessageController) ListConversations(c *gin.Context) {
	conversations, err := ctrl.messageService.ListConversations(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"conversations": conversations})
}

// CreateConversation 取两人会话，不存在则建
func (ctrl *MessageController) CreateConversation(c *gin.Context) {
	var req dto.CreateConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "用户ID不能为空")
		return
	}

	convID, isNew, err := ctrl.messageService.GetOrCreateConversation(c.Request.Context(), middleware.GetUserID(c), req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	message := "会话已存在"
	if isNew {
		message = "创建会话成功"
	}
	response.Success(c, message, gin.H{"conversation_id": convID, "is_new": isNew})
}

// ListMessages 会话消息，读取即置已读
func (ctrl *MessageController) ListMessages(c *gin.Context) {
	convID, err := strconv.ParseInt(c.Query("conversation_id"), 10, 64)
	if err != nil || convID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的会话ID")
		return
	}

	messages, err := ctrl.messageService.ListMessages(c.Request.Context(), middleware.GetUserID(c), convID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"messages": messages})
}

// SendMessage 发消息
func (ctrl *MessageController) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "会话ID和内容不能为空")
		return
	}

	msg, err := ctrl.messageService.SendMessage(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "发送成功", msg)
}
