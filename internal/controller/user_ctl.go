package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// UserController 用户接口
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户接口
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ==================== 认证 ====================

// Login 登录
// 兼容旧客户端：凭证走 GET 查询参数
func (ctrl *UserController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	password := strings.TrimSpace(c.Query("password"))
	if username == "" || password == "" {
		response.Error(c, http.StatusBadRequest, "用户名或密码不能为空")
		return
	}

	info, err := ctrl.userService.Login(c.Request.Context(), username, password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "登录成功", info)
}

// Register 注册
func (ctrl *UserController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "用户名、密码、邮箱不能为空")
		return
	}

	info, err := ctrl.userService.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "注册成功", info)
}

// HuaweiLogin 华为账号登录，首登自动建号
func (ctrl *UserController) HuaweiLogin(c *gin.Context) {
	var req struct {
		OpenID   string `json:"openId" binding:"required"`
		UnionID  string `json:"unionId"`
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "缺少 openId")
		return
	}

	info, err := ctrl.userService.HuaweiLogin(c.Request.Context(), req.OpenID, req.UnionID, req.Nickname)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "登录成功", info)
}

// ==================== 资料 ====================

// GetProfile 当前用户信息
func (ctrl *UserController) GetProfile(c *gin.Context) {
	info, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", info)
}

// UpdateProfile 更新资料
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求数据格式错误")
		return
	}

	info, err := ctrl.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", info)
}

// UpdatePassword 修改密码
func (ctrl *UserController) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "新旧密码不能为空")
		return
	}

	if err := ctrl.userService.UpdatePassword(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "密码修改成功", nil)
}

// UpdateEmail 修改邮箱
func (ctrl *UserController) UpdateEmail(c *gin.Context) {
	var req dto.UpdateEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "邮箱不能为空")
		return
	}

	if err := ctrl.userService.UpdateEmail(c.Request.Context(), middleware.GetUserID(c), req.Email); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "邮箱修改成功", nil)
}

// SearchUsers 按关键字搜索用户（私信建会话用）
func (ctrl *UserController) SearchUsers(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	if keyword == "" {
		response.Error(c, http.StatusBadRequest, "搜索关键字不能为空")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := ctrl.userService.SearchUsers(c.Request.Context(), middleware.GetUserID(c), keyword, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "搜索成功", gin.H{"users": users})
}
