package model

// 消息类型
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVoice = "voice"
	MessageTypeVideo = "video"
)

// Conversation 两人会话
// 参与者是无序对，但固定存两个槽位；查重时两种顺序都要查
// UpdatedAt 在每条新消息时被顶到最新，用于会话列表排序
type Conversation struct {
	BaseModel
	User1ID int64 `gorm:"index;not null"`
	User2ID int64 `gorm:"index;not null"`
}

func (Conversation) TableName() string { return "conversations" }

// OtherUserID 返回会话中另一方的用户 ID
func (c *Conversation) OtherUserID(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message 消息
// IsRead 只对"非发送者本人"有意义：读取会话时统一置位
type Message struct {
	BaseModel
	ConversationID int64  `gorm:"index;not null"`
	SenderID       int64  `gorm:"index;not null"`
	Content        string `gorm:"type:text"`
	Type           string `gorm:"size:20;default:'text'"`

	// 类型相关载荷
	ImageURL      string `gorm:"size:255"`
	VoiceURL      string `gorm:"size:255"`
	VoiceDuration int    `gorm:"default:0"`
	VideoURL      string `gorm:"size:255"`

	IsRead bool `gorm:"default:false"`
}

func (Message) TableName() string { return "messages" }
