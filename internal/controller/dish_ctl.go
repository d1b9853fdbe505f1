package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// DishController 菜品与评价接口
type DishController struct {
	dishService   *service.DishService
	reviewService *service.DishReviewService
}

// NewDishController 创建菜品接口
func NewDishController(dishService *service.DishService, reviewService *service.DishReviewService) *DishController {
	return &DishController{dishService: dishService, reviewService: reviewService}
}

// ==================== 菜品 ====================

// ListDishes 菜品列表（商家视角，含下架）
func (ctrl *DishController) ListDishes(c *gin.Context) {
	dishes, err := ctrl.dishService.ListDishes(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"dishes": dishes})
}

// GetDish 菜品详情
func (ctrl *DishController) GetDish(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	dish, err := ctrl.dishService.GetDish(c.Request.Context(), dishID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", dish)
}

// CreateDish 创建菜品
func (ctrl *DishController) CreateDish(c *gin.Context) {
	var req dto.CreateDishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "菜品名称和价格不能为空")
		return
	}

	dish, err := ctrl.dishService.CreateDish(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "添加成功", dish)
}

// UpdateDish 更新菜品
func (ctrl *DishController) UpdateDish(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	var req dto.UpdateDishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "请求数据格式错误")
		return
	}

	dish, err := ctrl.dishService.UpdateDish(c.Request.Context(), dishID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", dish)
}

// DeleteDish 删除菜品
func (ctrl *DishController) DeleteDish(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	if err := ctrl.dishService.DeleteDish(c.Request.Context(), dishID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// ==================== 评价 ====================

// ListReviews 菜品评价列表
func (ctrl *DishController) ListReviews(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(c.Request.Context(), dishID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"reviews": reviews})
}

// CreateReview 提交评价，重复提交覆盖
func (ctrl *DishController) CreateReview(c *gin.Context) {
	dishID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || dishID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的菜品ID")
		return
	}

	var req dto.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "评价内容不能为空")
		return
	}

	review, err := ctrl.reviewService.CreateReview(c.Request.Context(), middleware.GetUserID(c), dishID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "评价成功", review)
}
