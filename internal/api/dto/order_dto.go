package dto

// ==================== 请求 DTO ====================

// CreateOrderReq 结算购物车请求
type CreateOrderReq struct {
	TableID *int64 `json:"table_id"`
	Remark  string `json:"remark"`
	PayNow  *bool  `json:"pay_now"` // 缺省按 true 处理
}

// GuestOrderItemReq 匿名下单的菜品行
type GuestOrderItemReq struct {
	DishID   int64 `json:"dishId" binding:"required"`
	Quantity int   `json:"quantity"`
}

// GuestOrderReq 顾客扫码匿名下单请求
type GuestOrderReq struct {
	TableID int64               `json:"tableId" binding:"required"`
	Items   []GuestOrderItemReq `json:"items" binding:"required"`
	Remark  string              `json:"remark"`
}

// H5OrderItemReq H5 下单的菜品行
type H5OrderItemReq struct {
	DishID   int64 `json:"dish_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// H5OrderReq H5 网页按桌号下单请求
type H5OrderReq struct {
	TableNumber string           `json:"table_number"`
	Items       []H5OrderItemReq `json:"items" binding:"required"`
	Source      string           `json:"source"`
}

// PayOrderReq 支付订单请求
type PayOrderReq struct {
	OrderID int64 `json:"order_id" binding:"required"`
}

// ==================== 响应 DTO ====================

// OrderSummaryResp 下单结果摘要
type OrderSummaryResp struct {
	OrderID     int64   `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	ItemCount   int     `json:"item_count"`
	CreatedAt   string  `json:"created_at"`
}

// OrderListItemResp 订单列表条目
type OrderListItemResp struct {
	ID          int64   `json:"id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ItemCount   int64   `json:"item_count"`
}

// OrderItemResp 订单行（价格为下单快照）
type OrderItemResp struct {
	DishID   int64   `json:"dish_id"`
	DishName string  `json:"dish_name"`
	ImageURL string  `json:"image_url"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderDetailResp 订单详情
type OrderDetailResp struct {
	ID          int64           `json:"id"`
	TableID     *int64          `json:"table_id"`
	TotalAmount float64         `json:"total_amount"`
	Status      string          `json:"status"`
	Remark      string          `json:"remark"`
	CreatedAt   string          `json:"created_at"`
	Items       []OrderItemResp `json:"items"`
}

// TopDishResp 最畅销菜品
type TopDishResp struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	TotalSold int64  `json:"total_sold"`
}

// SalesStatsResp 销售统计
type SalesStatsResp struct {
	TotalRevenue  float64      `json:"total_revenue"`
	TotalQuantity int64        `json:"total_quantity"`
	TopDish       *TopDishResp `json:"top_dish"`
}
