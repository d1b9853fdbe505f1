package model

import "time"

// BaseModel 公共字段
// 本系统所有删除都是显式物理删除，不使用软删除，
// 否则点赞数/评论数等派生计数会和 join 表行数对不上
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
