package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

func newTableService(t *testing.T) *TableService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.DiningTable{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewTableService(repository.NewTableRepository(db), "https://canyin.example.com")
}

func TestTableService_ListBootstrapsDefaults(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()

	tables, err := svc.ListTables(ctx)
	if err != nil {
		t.Fatalf("查询桌位失败: %v", err)
	}
	// 空表首次访问自动铺 10 桌：8 张四人桌 + 2 间八人包间
	if len(tables) != 10 {
		t.Fatalf("桌位数 = %d, want 10", len(tables))
	}
	if tables[0].TableName != "1号桌" || tables[0].Capacity != 4 {
		t.Errorf("首桌 = %+v, want 1号桌/4 人", tables[0])
	}

	rooms := 0
	for _, table := range tables {
		if table.Capacity == 8 {
			rooms++
		}
	}
	if rooms != 2 {
		t.Errorf("包间数 = %d, want 2", rooms)
	}

	// 二次访问不再重复铺
	again, _ := svc.ListTables(ctx)
	if len(again) != 10 {
		t.Errorf("二次访问桌位数 = %d, want 10", len(again))
	}
}

func TestTableService_CreateTable(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()

	created, err := svc.CreateTable(ctx, &dto.CreateTableReq{TableNumber: "A1"})
	if err != nil {
		t.Fatalf("创建桌位失败: %v", err)
	}
	// 名称和容量走缺省
	if created.TableName != "A1号桌" || created.Capacity != 4 {
		t.Errorf("created = %+v, want A1号桌/4 人", created)
	}

	_, err = svc.CreateTable(ctx, &dto.CreateTableReq{TableNumber: "A1"})
	if !errors.Is(err, ErrTableNumberExists) {
		t.Errorf("重复桌号 err = %v, want ErrTableNumberExists", err)
	}
}

func TestTableService_UpdateStatus(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()

	created, _ := svc.CreateTable(ctx, &dto.CreateTableReq{TableNumber: "B2"})

	_, err := svc.UpdateStatus(ctx, created.ID, "eating")
	if !errors.Is(err, ErrInvalidTableStatus) {
		t.Errorf("非法状态 err = %v, want ErrInvalidTableStatus", err)
	}

	updated, err := svc.UpdateStatus(ctx, created.ID, model.TableStatusOccupied)
	if err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}
	if updated.Status != model.TableStatusOccupied {
		t.Errorf("status = %s, want occupied", updated.Status)
	}

	_, err = svc.UpdateStatus(ctx, 999, model.TableStatusCleaning)
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("不存在的桌位 err = %v, want ErrTableNotFound", err)
	}
}

func TestTableService_GetQRCode(t *testing.T) {
	svc := newTableService(t)
	ctx := context.Background()

	created, _ := svc.CreateTable(ctx, &dto.CreateTableReq{TableNumber: "7", TableName: "7号雅座"})

	qr, err := svc.GetQRCode(ctx, created.ID)
	if err != nil {
		t.Fatalf("获取二维码数据失败: %v", err)
	}
	if qr.ScanURL != "https://canyin.example.com/scan/table/7" {
		t.Errorf("scan_url = %s", qr.ScanURL)
	}
	if qr.DeepLink != "catering-app://table?tableId=7&mode=customer" {
		t.Errorf("deep_link = %s", qr.DeepLink)
	}
}
