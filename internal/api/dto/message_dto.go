package dto

// ==================== 请求 DTO ====================

// CreateConversationReq 创建或获取会话请求
type CreateConversationReq struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// SendMessageReq 发消息请求
type SendMessageReq struct {
	ConversationID int64  `json:"conversation_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
	Type           string `json:"type"`
	ImageURL       string `json:"image_url"`
	VoiceURL       string `json:"voice_url"`
	VoiceDuration  int    `json:"voice_duration"`
	VideoURL       string `json:"video_url"`
}

// MarkNotificationReq 标记/删除通知请求
type MarkNotificationReq struct {
	NotificationID int64 `json:"notification_id" binding:"required"`
}

// ==================== 响应 DTO ====================

// ConversationResp 会话列表条目（对方视角信息 + 最近一条消息 + 未读数）
type ConversationResp struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversationId"`
	UserID         int64  `json:"userId"` // 对方用户 ID
	Username       string `json:"username"`
	Avatar         string `json:"avatar"`
	Email          string `json:"email"`
	LastContent    string `json:"lastContent"`
	LastTime       int64  `json:"lastTime"`
	UnreadCount    int64  `json:"unreadCount"`
	IsOnline       bool   `json:"isOnline"`
}

// MessageResp 消息条目
type MessageResp struct {
	ID            int64  `json:"id"`
	Content       string `json:"content"`
	Time          int64  `json:"time"`
	IsMe          bool   `json:"isMe"`
	Type          string `json:"type"`
	ImageURL      string `json:"imageUrl"`
	VoiceURL      string `json:"voiceUrl"`
	VoiceDuration int    `json:"voiceDuration"`
	VideoURL      string `json:"videoUrl"`
}

// NotificationResp 通知条目
type NotificationResp struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	RelatedID   *int64 `json:"related_id"`
	RelatedType string `json:"related_type"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

// NotificationListResp 通知列表 + 未读数
type NotificationListResp struct {
	Notifications []NotificationResp `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
}
