package model

// Shop 店铺（单店部署，按 ID upsert）
type Shop struct {
	BaseModel
	UserID        int64  `gorm:"not null"` // 店铺拥有者
	ShopName      string `gorm:"size:100;not null"`
	Description   string `gorm:"type:text"`
	Address       string `gorm:"size:255"`
	Phone         string `gorm:"size:30"`
	BusinessHours string `gorm:"size:50"`
}

func (Shop) TableName() string { return "shops" }
