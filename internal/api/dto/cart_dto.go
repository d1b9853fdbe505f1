package dto

// ==================== 请求 DTO ====================

// AddCartItemReq 加购请求
type AddCartItemReq struct {
	DishID   int64 `json:"dish_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// UpdateCartItemReq 改购物车数量请求，quantity<=0 表示删行
type UpdateCartItemReq struct {
	DishID   int64 `json:"dish_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// ==================== 响应 DTO ====================

// CartItemResp 购物车行（联菜品现价）
type CartItemResp struct {
	DishID      int64   `json:"dish_id"`
	Quantity    int     `json:"quantity"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
}

// CartResp 整个购物车，金额读取时实时计算
type CartResp struct {
	Items         []CartItemResp `json:"items"`
	TotalAmount   float64        `json:"total_amount"`
	TotalQuantity int            `json:"total_quantity"`
}
