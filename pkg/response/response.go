package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构体
// 约定：无论成功失败，HTTP 状态码始终 200，业务状态放在 statusCode 里
// （鉴权中间件是例外，直接 401 中断）
type Response struct {
	StatusCode int         `json:"statusCode"` // 业务码
	Message    string      `json:"message"`    // 提示信息
	Data       interface{} `json:"data"`       // 数据，失败时为 null
}

// Success 成功响应 (statusCode=200)
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: 200,
		Message:    message,
		Data:       data,
	})
}

// Error 失败响应
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       nil,
	})
}

// Abort401 鉴权失败，直接中断请求
func Abort401(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
		StatusCode: 401,
		Message:    message,
		Data:       nil,
	})
}
