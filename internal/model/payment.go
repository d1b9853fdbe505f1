package model

import "gorm.io/datatypes"

// 支付渠道
const (
	PaymentChannelWechat = "wechat"
	PaymentChannelHuawei = "huawei"
)

// 支付单状态
const (
	PaymentStatusCreated  = "created"
	PaymentStatusPaid     = "paid"
	PaymentStatusNotified = "notified"
)

// PaymentIntent 预支付单
// 当前没有真实网关对接，预支付参数本地伪造，
// RawParams 保留完整签名参数，供状态查询与对账排查
type PaymentIntent struct {
	BaseModel
	OrderID   int64          `gorm:"index;not null"`
	UserID    int64          `gorm:"index;not null"`
	Channel   string         `gorm:"size:20;not null"`
	PrepayID  string         `gorm:"size:100"`
	NonceStr  string         `gorm:"size:64"`
	Sign      string         `gorm:"size:64"`
	Amount    int64          `gorm:"not null"` // 单位：分
	RawParams datatypes.JSON `gorm:"type:json"`
	Status    string         `gorm:"size:20;default:'created'"`
}

func (PaymentIntent) TableName() string { return "payment_intents" }
