package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/pkg/response"
)

// TableController 桌位接口
type TableController struct {
	tableService *service.TableService
}

// NewTableController 创建桌位接口
func NewTableController(tableService *service.TableService) *TableController {
	return &TableController{tableService: tableService}
}

// ListTables 桌位列表
func (ctrl *TableController) ListTables(c *gin.Context) {
	tables, err := ctrl.tableService.ListTables(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", gin.H{"tables": tables})
}

// CreateTable 创建桌位
func (ctrl *TableController) CreateTable(c *gin.Context) {
	var req dto.CreateTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "桌号不能为空")
		return
	}

	table, err := ctrl.tableService.CreateTable(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "添加成功", table)
}

// UpdateStatus 更新桌位状态
func (ctrl *TableController) UpdateStatus(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tableID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的桌位ID")
		return
	}

	var req dto.UpdateTableStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "状态不能为空")
		return
	}

	table, err := ctrl.tableService.UpdateStatus(c.Request.Context(), tableID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "更新成功", table)
}

// DeleteTable 删除桌位
func (ctrl *TableController) DeleteTable(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tableID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的桌位ID")
		return
	}

	if err := ctrl.tableService.DeleteTable(c.Request.Context(), tableID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// GetQRCode 桌位二维码数据
func (ctrl *TableController) GetQRCode(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tableID <= 0 {
		response.Error(c, http.StatusBadRequest, "无效的桌位ID")
		return
	}

	qr, err := ctrl.tableService.GetQRCode(c.Request.Context(), tableID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, "获取成功", qr)
}
