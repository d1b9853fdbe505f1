package dto

// ==================== 请求 DTO ====================

// CreatePostReq 发帖请求
type CreatePostReq struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Images    []string `json:"images"`
	Videos    []string `json:"videos"`
	ImageURLs string   `json:"image_urls"` // 已拼接好的逗号串，优先级高于 images/videos
}

// LikePostReq 点赞/取消点赞请求
type LikePostReq struct {
	PostID int64 `json:"post_id" binding:"required"`
}

// CreateCommentReq 评论请求
type CreateCommentReq struct {
	PostID  int64  `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// FollowReq 关注/取关请求
type FollowReq struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// ==================== 响应 DTO ====================

// PostResp 帖子（含当前用户视角的点赞/关注状态）
type PostResp struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"user_id"`
	Username     string   `json:"username"`
	Avatar       string   `json:"avatar"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	ImageURLs    string   `json:"imageUrls"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos"`
	LikeCount    int      `json:"likeCount"`
	CommentCount int      `json:"commentCount"`
	IsLiked      bool     `json:"isLiked"`
	IsFollowed   bool     `json:"isFollowed"`
	CreateTime   int64    `json:"createTime"` // 秒时间戳
}

// Pagination 分页信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// PostListResp 帖子分页
type PostListResp struct {
	Posts      []PostResp `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// LikeResp 点赞结果，likes 为提交后回读的权威值
type LikeResp struct {
	IsLiked bool `json:"is_liked"`
	Likes   int  `json:"likes"`
}

// CommentResp 评论条目
type CommentResp struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	PostID     int64  `json:"post_id"`
	Content    string `json:"content"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	CreateTime int64  `json:"createTime"`
}

// CreateCommentResp 评论结果，comment_count 为提交后回读的权威值
type CreateCommentResp struct {
	CommentID    int64 `json:"comment_id"`
	CommentCount int   `json:"comment_count"`
}

// FollowUserResp 关注/粉丝列表条目
type FollowUserResp struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	Email      string `json:"email"`
	FollowTime int64  `json:"follow_time"`
}

// FollowListResp 关注/粉丝分页
type FollowListResp struct {
	Users []FollowUserResp `json:"users"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Pages int              `json:"pages"`
}

// FollowStatsResp 关注统计
type FollowStatsResp struct {
	FollowingCount int64 `json:"following_count"`
	FollowersCount int64 `json:"followers_count"`
}
