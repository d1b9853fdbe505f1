package dto

// ==================== 请求 DTO ====================

// CreateWechatOrderReq 创建微信预支付单请求
type CreateWechatOrderReq struct {
	OrderID     int64  `json:"orderId" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"` // 单位：分
	Description string `json:"description"`
}

// VerifyHuaweiPurchaseReq 华为支付验证请求
type VerifyHuaweiPurchaseReq struct {
	PurchaseToken string `json:"purchaseToken" binding:"required"`
	ProductID     string `json:"productId" binding:"required"`
	OrderID       int64  `json:"orderId"`
}

// ==================== 响应 DTO ====================

// WechatPrepayResp 调起微信支付所需参数（本地伪造，未对接真实网关）
type WechatPrepayResp struct {
	PrepayID     string `json:"prepayId"`
	AppID        string `json:"appId"`
	PartnerID    string `json:"partnerId"`
	PackageValue string `json:"packageValue"`
	NonceStr     string `json:"nonceStr"`
	TimeStamp    string `json:"timeStamp"`
	Sign         string `json:"sign"`
}

// PaymentStatusResp 支付状态查询结果
type PaymentStatusResp struct {
	OrderID       int64  `json:"orderId"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
	PaidAt        int64  `json:"paidAt,omitempty"`
}
