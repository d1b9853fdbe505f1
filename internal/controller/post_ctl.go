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

// PostController 社区帖子接口
type PostController struct {
	postService *service.PostService
}

// NewPostController 创建帖子接口
func NewPostController(postService *service.PostService) *PostController {
	return &PostController{postService: postService}
}

// ==================== 帖子 ====================

// ListFeed 帖子流，未登录也可浏览
func (ctrl *PostController) ListFeed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	category := c.DefaultQuery("category", service.FeedCategoryRecommend)

	feed, err := ctrl.postService.ListFeed(c.Request.Context(), middleware.GetUserID(c), category, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", feed)
}

// ListUserPosts 指定作者的帖子
func (ctrl *PostController) ListUserPosts(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || authorID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	feed, err := ctrl.postService.ListUserPosts(c.Request.Context(), middleware.GetUserID(c), authorID, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", feed)
}

// CreatePost 发帖
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "标题和内容不能为空")
		return
	}

	post, err := ctrl.postService.CreatePost(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "发布成功", post)
}

// DeletePost 删除自己的帖子
func (ctrl *PostController) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的帖子ID")
		return
	}

	if err := ctrl.postService.DeletePost(c.Request.Context(), middleware.GetUserID(c), postID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// ==================== 点赞 ====================

// ToggleLike 点赞/取消点赞
func (ctrl *PostController) ToggleLike(c *gin.Context) {
	var req dto.LikePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "帖子ID不能为空")
		return
	}

	result, err := ctrl.postService.ToggleLike(c.Request.Context(), middleware.GetUserID(c), req.PostID)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "已取消点赞"
	if result.IsLiked {
		msg = "点赞成功"
	}
	response.Success(c, msg, result)
}

// ==================== 评论 ====================

// ListComments 帖子评论
func (ctrl *PostController) ListComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Query("post_id"), 10, 64)
	if err != nil || postID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的帖子ID")
		return
	}

	comments, err := ctrl.postService.ListComments(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"comments": comments})
}

// CreateComment 发表评论
func (ctrl *PostController) CreateComment(c *gin.Context) {
	var req dto.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "评论内容不能为空")
		return
	}

	result, err := ctrl.postService.CreateComment(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "评论成功", result)
}

// DeleteComment 删除自己的评论
func (ctrl *PostController) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || commentID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := ctrl.postService.DeleteComment(c.Request.Context(), middleware.GetUserID(c), commentID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "删除成功", nil)
}
