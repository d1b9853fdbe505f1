package model

// Follow 关注关系
// (follower_id, following_id) 复合唯一；不允许自己关注自己
type Follow struct {
	BaseModel
	FollowerID  int64 `gorm:"uniqueIndex:uk_follower_following;not null"`
	FollowingID int64 `gorm:"uniqueIndex:uk_follower_following;not null"`
}

func (Follow) TableName() string { return "follows" }
