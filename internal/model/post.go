package model

// Post 帖子
// Likes / CommentCount 是派生计数，必须与 post_likes / comments
// 的行数保持一致，只允许在同一事务内随行增删一起更新
type Post struct {
	BaseModel
	UserID  int64  `gorm:"index;not null"`
	Title   string `gorm:"size:255"`
	Content string `gorm:"type:text;not null"`
	// 图片/视频地址，逗号拼接
	ImageURLs    string `gorm:"type:text"`
	Likes        int    `gorm:"default:0"`
	CommentCount int    `gorm:"default:0"`
}

func (Post) TableName() string { return "posts" }

// PostLike 点赞关系，行的存在即"已点赞"
type PostLike struct {
	BaseModel
	UserID int64 `gorm:"uniqueIndex:uk_user_post;not null"`
	PostID int64 `gorm:"uniqueIndex:uk_user_post;not null"`
}

func (PostLike) TableName() string { return "post_likes" }
