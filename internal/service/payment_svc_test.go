package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
	"canyin_dev_v1_202602/pkg/config"
)

func setupPaymentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}, &model.PaymentIntent{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(
		repository.NewPaymentRepository(db),
		repository.NewOrderRepository(db),
		zerolog.Nop(),
		config.WechatConfig{AppID: "wxtest", MchID: "1900000109", APIKey: "test-api-key"},
	)
}

func seedPendingOrder(t *testing.T, db *gorm.DB, userID int64) int64 {
	t.Helper()
	order := &model.Order{UserID: &userID, ShopID: 1, TotalAmount: decimal.NewFromInt(50), Status: model.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("造订单失败: %v", err)
	}
	return order.ID
}

func TestPaymentService_SignMD5(t *testing.T) {
	svc := newPaymentService(setupPaymentTestDB(t))

	params := map[string]string{
		"appId":     "wxtest",
		"timeStamp": "1700000000",
		"nonceStr":  "abcdef0123456789",
		"package":   "Sign=WXPay",
		"partnerId": "1900000109",
		"prepayId":  "wx1700000000abcdef0123456789",
	}
	first := svc.signMD5(params)
	second := svc.signMD5(params)

	// 签名确定且为 32 位大写十六进制
	if first != second {
		t.Errorf("同参数签名不一致: %s vs %s", first, second)
	}
	if len(first) != 32 || first != strings.ToUpper(first) {
		t.Errorf("签名格式不合法: %q", first)
	}

	// 改 key 签名必变
	other := newPaymentService(setupPaymentTestDB(t))
	other.wechat.APIKey = "another-key"
	if other.signMD5(params) == first {
		t.Error("不同 key 产生了相同签名")
	}
}

func TestPaymentService_CreateWechatOrder(t *testing.T) {
	db := setupPaymentTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	orderID := seedPendingOrder(t, db, 1)

	_, err := svc.CreateWechatOrder(ctx, 1, &dto.CreateWechatOrderReq{OrderID: orderID, Amount: 0})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("零金额 err = %v, want ErrInvalidAmount", err)
	}

	resp, err := svc.CreateWechatOrder(ctx, 1, &dto.CreateWechatOrderReq{OrderID: orderID, Amount: 5000})
	if err != nil {
		t.Fatalf("创建预支付单失败: %v", err)
	}
	if !strings.HasPrefix(resp.PrepayID, "wx") {
		t.Errorf("prepay_id = %s, want wx 前缀", resp.PrepayID)
	}
	if resp.PackageValue != "Sign=WXPay" || resp.Sign == "" {
		t.Errorf("prepay resp = %+v", resp)
	}

	// 支付意向落库
	var intent model.PaymentIntent
	if err := db.Where("prepay_id = ?", resp.PrepayID).First(&intent).Error; err != nil {
		t.Fatalf("支付单缺失: %v", err)
	}
	if intent.Status != model.PaymentStatusCreated || intent.Amount != 5000 {
		t.Errorf("intent = %+v", intent)
	}

	// 已支付的订单不能再发起预支付
	db.Model(&model.Order{}).Where("id = ?", orderID).Update("status", model.OrderStatusPaid)
	_, err = svc.CreateWechatOrder(ctx, 1, &dto.CreateWechatOrderReq{OrderID: orderID, Amount: 5000})
	if !errors.Is(err, ErrOrderNotPayable) {
		t.Errorf("已支付订单 err = %v, want ErrOrderNotPayable", err)
	}
}

func TestPaymentService_HandleWechatNotify(t *testing.T) {
	db := setupPaymentTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	orderID := seedPendingOrder(t, db, 1)
	resp, err := svc.CreateWechatOrder(ctx, 1, &dto.CreateWechatOrderReq{OrderID: orderID, Amount: 5000})
	if err != nil {
		t.Fatalf("创建预支付单失败: %v", err)
	}

	body := fmt.Sprintf(`<xml><return_code><![CDATA[SUCCESS]]></return_code><result_code><![CDATA[SUCCESS]]></result_code><out_trade_no><![CDATA[%s]]></out_trade_no></xml>`, resp.PrepayID)

	ack := svc.HandleWechatNotify(ctx, []byte(body))
	if !strings.Contains(ack, "SUCCESS") {
		t.Fatalf("回调应答 = %s, want SUCCESS", ack)
	}

	// 订单与支付单都推进
	var order model.Order
	db.First(&order, orderID)
	if order.Status != model.OrderStatusPaid {
		t.Errorf("订单 status = %s, want paid", order.Status)
	}
	var intent model.PaymentIntent
	db.Where("prepay_id = ?", resp.PrepayID).First(&intent)
	if intent.Status != model.PaymentStatusNotified {
		t.Errorf("支付单 status = %s, want notified", intent.Status)
	}

	// 重复回调幂等
	again := svc.HandleWechatNotify(ctx, []byte(body))
	if !strings.Contains(again, "SUCCESS") {
		t.Errorf("重复回调应答 = %s, want SUCCESS", again)
	}

	// 非法报文回 FAIL
	bad := svc.HandleWechatNotify(ctx, []byte("not-xml"))
	if !strings.Contains(bad, "FAIL") {
		t.Errorf("非法报文应答 = %s, want FAIL", bad)
	}

	// 查不到的单回 FAIL
	missing := svc.HandleWechatNotify(ctx, []byte(`<xml><return_code>SUCCESS</return_code><result_code>SUCCESS</result_code><out_trade_no>wx-unknown</out_trade_no></xml>`))
	if !strings.Contains(missing, "FAIL") {
		t.Errorf("未知单应答 = %s, want FAIL", missing)
	}
}

func TestPaymentService_VerifyHuaweiPurchase(t *testing.T) {
	db := setupPaymentTestDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	err := svc.VerifyHuaweiPurchase(ctx, 1, &dto.VerifyHuaweiPurchaseReq{PurchaseToken: "", ProductID: "p1"})
	if !errors.Is(err, ErrInvalidPurchase) {
		t.Errorf("空凭证 err = %v, want ErrInvalidPurchase", err)
	}

	orderID := seedPendingOrder(t, db, 1)
	err = svc.VerifyHuaweiPurchase(ctx, 1, &dto.VerifyHuaweiPurchaseReq{
		PurchaseToken: "token-abc",
		ProductID:     "p1",
		OrderID:       orderID,
	})
	if err != nil {
		t.Fatalf("华为凭证校验失败: %v", err)
	}

	var order model.Order
	db.First(&order, orderID)
	if order.Status != model.OrderStatusPaid {
		t.Errorf("订单 status = %s, want paid", order.Status)
	}

	status, err := svc.QueryStatus(ctx, orderID)
	if err != nil {
		t.Fatalf("查询支付状态失败: %v", err)
	}
	if status.PaymentMethod != model.PaymentChannelHuawei || status.PaidAt == 0 {
		t.Errorf("status = %+v, want huawei 渠道且有支付时间", status)
	}
}
