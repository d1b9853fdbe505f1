package model

// 通知类型
const (
	NotificationTypeOrder   = "order"
	NotificationTypeMessage = "message"
	NotificationTypeFollow  = "follow"
	NotificationTypeSystem  = "system"
)

// Notification 站内通知，仅追加的收件箱
type Notification struct {
	BaseModel
	UserID      int64  `gorm:"index;not null"` // 接收者
	Type        string `gorm:"size:20;not null"`
	Title       string `gorm:"size:100"`
	Content     string `gorm:"size:500"`
	RelatedID   *int64
	RelatedType string `gorm:"size:20"`
	IsRead      bool   `gorm:"default:false"`
}

func (Notification) TableName() string { return "notifications" }
