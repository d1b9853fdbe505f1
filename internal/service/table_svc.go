package service

import (
	"context"
	"errors"
	"fmt"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== TableService 桌位服务 ====================

// TableService 桌位服务
type TableService struct {
	tableRepo repository.TableRepository
	baseURL   string
}

// NewTableService 创建桌位服务
func NewTableService(tableRepo repository.TableRepository, baseURL string) *TableService {
	return &TableService{tableRepo: tableRepo, baseURL: baseURL}
}

// ListTables 桌位列表
// 首次访问空表时先铺一批默认桌位，省去手工初始化
func (s *TableService) ListTables(ctx context.Context) ([]dto.TableResp, error) {
	count, err := s.tableRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.bootstrapDefaults(ctx); err != nil {
			return nil, err
		}
	}

	tables, err := s.tableRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TableResp, 0, len(tables))
	for i := range tables {
		result = append(result, *s.toTableResp(&tables[i]))
	}
	return result, nil
}

// CreateTable 创建桌位，桌号唯一
func (s *TableService) CreateTable(ctx context.Context, req *dto.CreateTableReq) (*dto.TableResp, error) {
	existing, err := s.tableRepo.GetByNumber(ctx, req.TableNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTableNumberExists
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 4
	}
	name := req.TableName
	if name == "" {
		name = fmt.Sprintf("%s号桌", req.TableNumber)
	}

	table := &model.DiningTable{
		TableNumber: req.TableNumber,
		Name:        name,
		Capacity:    capacity,
		Status:      model.TableStatusAvailable,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return s.toTableResp(table), nil
}

// UpdateStatus 更新桌位状态
func (s *TableService) UpdateStatus(ctx context.Context, tableID int64, status string) (*dto.TableResp, error) {
	if !model.ValidTableStatus(status) {
		return nil, ErrInvalidTableStatus
	}

	rows, err := s.tableRepo.UpdateStatus(ctx, tableID, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrTableNotFound
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	return s.toTableResp(table), nil
}

// DeleteTable 删除桌位
func (s *TableService) DeleteTable(ctx context.Context, tableID int64) error {
	rows, err := s.tableRepo.Delete(ctx, tableID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTableNotFound
	}
	return nil
}

// GetQRCode 桌位二维码数据
// 返回扫码链接和 App 深链，二维码图本体由前端生成
func (s *TableService) GetQRCode(ctx context.Context, tableID int64) (*dto.TableQRCodeResp, error) {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}

	return &dto.TableQRCodeResp{
		TableID:     table.ID,
		TableNumber: table.TableNumber,
		TableName:   table.Name,
		ScanURL:     fmt.Sprintf("%s/scan/table/%s", s.baseURL, table.TableNumber),
		DeepLink:    fmt.Sprintf("catering-app://table?tableId=%s&mode=customer", table.TableNumber),
	}, nil
}

// bootstrapDefaults 铺默认桌位：1-8 号四人桌，9-10 号八人包间
func (s *TableService) bootstrapDefaults(ctx context.Context) error {
	tables := make([]model.DiningTable, 0, 10)
	for i := 1; i <= 8; i++ {
		tables = append(tables, model.DiningTable{
			TableNumber: fmt.Sprintf("%d", i),
			Name:        fmt.Sprintf("%d号桌", i),
			Capacity:    4,
			Status:      model.TableStatusAvailable,
		})
	}
	for i := 9; i <= 10; i++ {
		tables = append(tables, model.DiningTable{
			TableNumber: fmt.Sprintf("%d", i),
			Name:        fmt.Sprintf("%d号包间", i),
			Capacity:    8,
			Status:      model.TableStatusAvailable,
		})
	}
	return s.tableRepo.CreateBatch(ctx, tables)
}

// toTableResp 转换为 DTO
func (s *TableService) toTableResp(table *model.DiningTable) *dto.TableResp {
	return &dto.TableResp{
		ID:          table.ID,
		TableNumber: table.TableNumber,
		TableName:   table.Name,
		Capacity:    table.Capacity,
		Status:      table.Status,
		CreatedAt:   table.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   table.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ==================== 错误定义 ====================

var (
	ErrTableNotFound      = errors.New("桌位不存在")
	ErrTableNumberExists  = errors.New("桌号已存在")
	ErrInvalidTableStatus = errors.New("桌位状态不合法")
)
