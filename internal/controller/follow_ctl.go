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

// FollowController 关注接口
type FollowController struct {
	followService *service.FollowService
}

// NewFollowController 创建关注接口
func NewFollowController(followService *service.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// Follow 关注
func (ctrl *FollowController) Follow(c *gin.Context) {
	var req dto.FollowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "用户ID不能为空")
		return
	}

	if err := ctrl.followService.Follow(c.Request.Context(), middleware.GetUserID(c), req.UserID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "关注成功", nil)
}

// Unfollow 取消关注
func (ctrl *FollowController) Unfollow(c *gin.Context) {
	var req dto.FollowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "用户ID不能为空")
		return
	}

	if err := ctrl.followService.Unfollow(c.Request.Context(), middleware.GetUserID(c), req.UserID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "已取消关注", nil)
}

// Check 是否已关注
func (ctrl *FollowController) Check(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || targetID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	following, err := ctrl.followService.IsFollowing(c.Request.Context(), middleware.GetUserID(c), targetID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"is_following": following})
}

// List 关注/粉丝列表，type 取 following 或 followers
func (ctrl *FollowController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	listType := c.DefaultQuery("type", "following")

	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	var (
		result *dto.FollowListResp
		err    error
	)
	if listType == "followers" {
		result, err = ctrl.followService.FollowersList(ctx, userID, page, limit)
	} else {
		result, err = ctrl.followService.FollowingList(ctx, userID, page, limit)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", result)
}

// Stats 关注数和粉丝数
func (ctrl *FollowController) Stats(c *gin.Context) {
	// 不传 user_id 时查自己的
	userID := middleware.GetUserID(c)
	if idStr := c.Query("user_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "无效的用户ID")
			return
		}
		userID = id
	}

	stats, err := ctrl.followService.Stats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", stats)
}
