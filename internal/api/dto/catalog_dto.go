package dto

// ==================== 请求 DTO ====================

// CreateDishReq 创建菜品请求
type CreateDishReq struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	CookingMethod string  `json:"cooking_method"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
	IsRecommended bool    `json:"is_recommended"`
	Status        string  `json:"status"`
}

// UpdateDishReq 更新菜品请求，nil 字段不更新
type UpdateDishReq struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	CookingMethod *string  `json:"cooking_method,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Category      *string  `json:"category,omitempty"`
	IsRecommended *bool    `json:"is_recommended,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// CreateReviewReq 菜品评价请求（重复提交覆盖旧评价）
type CreateReviewReq struct {
	Rating  int    `json:"rating"`
	Content string `json:"content" binding:"required"`
}

// CreateTableReq 创建桌位请求
type CreateTableReq struct {
	TableNumber string `json:"table_number" binding:"required"`
	TableName   string `json:"table_name"`
	Capacity    int    `json:"capacity"`
}

// UpdateTableStatusReq 更新桌位状态请求
type UpdateTableStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateShopReq 更新店铺资料请求，空字段不动
type UpdateShopReq struct {
	Name          string `json:"name"`
	ShopName      string `json:"shop_name"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	BusinessHours string `json:"business_hours"`
}

// ==================== 响应 DTO ====================

// DishResp 菜品
type DishResp struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CookingMethod string  `json:"cooking_method"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
	IsRecommended bool    `json:"is_recommended"`
	Status        string  `json:"status"`
	Sales         int     `json:"sales"`
	Rating        float64 `json:"rating"`
	ReviewCount   int64   `json:"review_count"`
}

// ShopInfoResp 店铺信息，今日订单/营业额为派生值
type ShopInfoResp struct {
	ID            int64   `json:"id"`
	ShopName      string  `json:"shop_name"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	BusinessHours string  `json:"business_hours"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	Score         float64 `json:"score"`
	TodayOrders   int64   `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
}

// ReviewResp 菜品评价条目
type ReviewResp struct {
	ID        int64  `json:"id"`
	DishID    int64  `json:"dish_id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"` // 毫秒时间戳
}

// TableResp 桌位
type TableResp struct {
	ID          int64  `json:"id"`
	TableNumber string `json:"table_number"`
	TableName   string `json:"table_name"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TableQRCodeResp 桌位二维码数据
type TableQRCodeResp struct {
	TableID     int64  `json:"table_id"`
	TableNumber string `json:"table_number"`
	TableName   string `json:"table_name"`
	ScanURL     string `json:"scan_url"`  // 顾客扫码跳转链接
	DeepLink    string `json:"deep_link"` // App 内部深链
}
