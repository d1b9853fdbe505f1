package model

// 桌位状态
const (
	TableStatusAvailable = "available" // 空闲
	TableStatusOccupied  = "occupied"  // 使用中
	TableStatusReserved  = "reserved"  // 已预订
	TableStatusCleaning  = "cleaning"  // 清理中
)

// ValidTableStatus 校验桌位状态枚举
func ValidTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusCleaning:
		return true
	}
	return false
}

// DiningTable 桌位
type DiningTable struct {
	BaseModel
	TableNumber string `gorm:"size:20;uniqueIndex;not null"`
	Name        string `gorm:"column:table_name;size:50"`
	Capacity    int    `gorm:"default:4"`
	Status      string `gorm:"size:20;default:'available'"`
}

func (DiningTable) TableName() string { return "tables_info" }
