package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// 业务错误到信封状态码的映射
// HTTP 状态码恒为 200，真实状态放在信封的 statusCode 里

var notFoundErrs = []error{
	service.ErrUserNotFound,
	service.ErrDishNotFound,
	service.ErrTableNotFound,
	service.ErrOrderNotFound,
	service.ErrPostNotFound,
	service.ErrCommentNotFound,
	service.ErrConversationNotFound,
	service.ErrNotificationNotFound,
	service.ErrCartItemNotFound,
}

var conflictErrs = []error{
	service.ErrUsernameExists,
	service.ErrTableNumberExists,
	service.ErrAlreadyFollowing,
}

var badRequestErrs = []error{
	service.ErrInvalidCredentials,
	service.ErrInvalidOldPassword,
	service.ErrNothingToUpdate,
	service.ErrTableRequired,
	service.ErrInvalidDishStatus,
	service.ErrInvalidPrice,
	service.ErrInvalidRating,
	service.ErrInvalidTableStatus,
	service.ErrDishNotAvailable,
	service.ErrEmptyCart,
	service.ErrEmptyOrder,
	service.ErrInvalidOrderStatus,
	service.ErrOrderNotPayable,
	service.ErrSelfFollow,
	service.ErrNotFollowing,
	service.ErrSelfConversation,
	service.ErrInvalidMessageType,
	service.ErrInvalidAmount,
	service.ErrInvalidPurchase,
}

// fail 按业务错误写信封，未识别的错误按 500 处理且不外泄细节
func fail(c *gin.Context, err error) {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			response.Error(c, http.StatusConflict, err.Error())
			return
		}
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	response.Error(c, http.StatusInternalServerError, "服务器内部错误")
}
