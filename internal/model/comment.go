package model

// Comment 评论，增删必须同步 Post.CommentCount
type Comment struct {
	BaseModel
	PostID  int64  `gorm:"index;not null"`
	UserID  int64  `gorm:"index;not null"`
	Content string `gorm:"type:text;not null"`
}

func (Comment) TableName() string { return "comments" }
