package dto

// ==================== 请求 DTO ====================

// RegisterReq 用户注册请求
type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Avatar   string `json:"avatar"`
}

// UpdateProfileReq 更新资料请求，至少提供一个字段
type UpdateProfileReq struct {
	Username *string `json:"username,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// UpdatePasswordReq 修改密码请求
type UpdatePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateEmailReq 修改邮箱请求
type UpdateEmailReq struct {
	Email string `json:"email" binding:"required"`
}

// GuestSessionReq 顾客扫码临时会话请求
type GuestSessionReq struct {
	TableID string `json:"tableId" binding:"required"`
}

// ==================== 响应 DTO ====================

// UserInfoResp 用户信息（登录时附带 token）
type UserInfoResp struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Avatar   string `json:"avatar"`
	Address  string `json:"address,omitempty"`
	Token    string `json:"token,omitempty"`
}

// GuestSessionResp 顾客临时会话
type GuestSessionResp struct {
	Token     string `json:"token"`
	TableID   string `json:"tableId"`
	ExpiresIn int    `json:"expiresIn"` // 秒
}

// SearchUserResp 用户搜索结果条目
type SearchUserResp struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Type      string `json:"type"` // 前端期望 type 字段
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}
