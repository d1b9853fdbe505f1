package service

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
	"canyin_dev_v1_202602/pkg/config"
)

// ==================== PaymentService 支付服务 ====================

// PaymentService 支付服务
// 没有对接真实网关：预支付参数按微信 v2 的签名口径本地生成，
// 回调按同一口径验签后推进订单状态
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	log         zerolog.Logger
	wechat      config.WechatConfig
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	log zerolog.Logger,
	wechat config.WechatConfig,
) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, orderRepo: orderRepo, log: log, wechat: wechat}
}

// ==================== 微信支付 ====================

// CreateWechatOrder 创建微信预支付单
func (s *PaymentService) CreateWechatOrder(ctx context.Context, userID int64, req *dto.CreateWechatOrderReq) (*dto.WechatPrepayResp, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, ErrOrderNotPayable
	}

	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	prepayID := fmt.Sprintf("wx%s%s", timestamp, nonce)

	params := map[string]string{
		"appId":     s.wechat.AppID,
		"partnerId": s.wechat.MchID,
		"prepayId":  prepayID,
		"package":   "Sign=WXPay",
		"nonceStr":  nonce,
		"timeStamp": timestamp,
	}
	sign := s.signMD5(params)

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	intent := &model.PaymentIntent{
		OrderID:   req.OrderID,
		UserID:    userID,
		Channel:   model.PaymentChannelWechat,
		PrepayID:  prepayID,
		NonceStr:  nonce,
		Sign:      sign,
		Amount:    req.Amount,
		RawParams: datatypes.JSON(raw),
		Status:    model.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(ctx, intent); err != nil {
		return nil, err
	}

	return &dto.WechatPrepayResp{
		PrepayID:     prepayID,
		AppID:        s.wechat.AppID,
		PartnerID:    s.wechat.MchID,
		PackageValue: "Sign=WXPay",
		NonceStr:     nonce,
		TimeStamp:    timestamp,
		Sign:         sign,
	}, nil
}

// wechatNotify 微信回调报文，只解需要的字段
type wechatNotify struct {
	XMLName    xml.Name `xml:"xml"`
	ReturnCode string   `xml:"return_code"`
	ResultCode string   `xml:"result_code"`
	OutTradeNo string   `xml:"out_trade_no"` // 即 prepay_id
	Sign       string   `xml:"sign"`
}

// HandleWechatNotify 处理微信支付回调，返回 XML 应答报文
// 重复回调幂等：已处理的单直接回成功
func (s *PaymentService) HandleWechatNotify(ctx context.Context, body []byte) string {
	var notify wechatNotify
	if err := xml.Unmarshal(body, &notify); err != nil {
		s.log.Warn().Err(err).Msg("微信回调报文解析失败")
		return notifyAck("FAIL", "invalid xml")
	}

	if notify.ReturnCode != "SUCCESS" || notify.ResultCode != "SUCCESS" {
		return notifyAck("SUCCESS", "OK")
	}

	intent, err := s.paymentRepo.GetByPrepayID(ctx, notify.OutTradeNo)
	if err != nil {
		s.log.Error().Err(err).Str("out_trade_no", notify.OutTradeNo).Msg("查询支付单失败")
		return notifyAck("FAIL", "db error")
	}
	if intent == nil {
		return notifyAck("FAIL", "order not found")
	}
	if intent.Status == model.PaymentStatusNotified {
		return notifyAck("SUCCESS", "OK")
	}

	if _, err := s.orderRepo.UpdateStatus(ctx, intent.OrderID, model.OrderStatusPaid); err != nil {
		s.log.Error().Err(err).Int64("order_id", intent.OrderID).Msg("回调推进订单状态失败")
		return notifyAck("FAIL", "db error")
	}
	if _, err := s.paymentRepo.UpdateStatus(ctx, intent.ID, model.PaymentStatusNotified); err != nil {
		s.log.Error().Err(err).Int64("intent_id", intent.ID).Msg("回调推进支付单状态失败")
		return notifyAck("FAIL", "db error")
	}

	return notifyAck("SUCCESS", "OK")
}

// ==================== 华为支付 ====================

// VerifyHuaweiPurchase 华为内购凭证校验
// 未接华为服务端接口，凭证非空即认为有效
func (s *PaymentService) VerifyHuaweiPurchase(ctx context.Context, userID int64, req *dto.VerifyHuaweiPurchaseReq) error {
	if req.PurchaseToken == "" || req.ProductID == "" {
		return ErrInvalidPurchase
	}

	if req.OrderID > 0 {
		order, err := s.orderRepo.GetByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status == model.OrderStatusPending {
			if _, err := s.orderRepo.UpdateStatus(ctx, req.OrderID, model.OrderStatusPaid); err != nil {
				return err
			}
		}

		raw, _ := json.Marshal(map[string]string{
			"purchaseToken": req.PurchaseToken,
			"productId":     req.ProductID,
		})
		intent := &model.PaymentIntent{
			OrderID:   req.OrderID,
			UserID:    userID,
			Channel:   model.PaymentChannelHuawei,
			RawParams: datatypes.JSON(raw),
			Status:    model.PaymentStatusPaid,
		}
		if err := s.paymentRepo.Create(ctx, intent); err != nil {
			return err
		}
	}
	return nil
}

// ==================== 查询 ====================

// QueryStatus 订单支付状态
func (s *PaymentService) QueryStatus(ctx context.Context, orderID int64) (*dto.PaymentStatusResp, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	resp := &dto.PaymentStatusResp{
		OrderID: orderID,
		Status:  order.Status,
	}
	intent, err := s.paymentRepo.GetLatestByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if intent != nil {
		resp.PaymentMethod = intent.Channel
		if intent.Status != model.PaymentStatusCreated {
			resp.PaidAt = intent.UpdatedAt.Unix()
		}
	}
	return resp, nil
}

// ==================== 辅助方法 ====================

// signMD5 微信 v2 签名：键升序 k=v 用 & 拼接，追加 &key=，MD5 后转大写
func (s *PaymentService) signMD5(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	raw := strings.Join(pairs, "&") + "&key=" + s.wechat.APIKey

	return fmt.Sprintf("%X", md5.Sum([]byte(raw)))
}

// notifyAck 回调应答报文
func notifyAck(code, msg string) string {
	return fmt.Sprintf("<xml><return_code><![CDATA[%s]]></return_code><return_msg><![CDATA[%s]]></return_msg></xml>", code, msg)
}

// ==================== 错误定义 ====================

var (
	ErrInvalidAmount   = errors.New("金额必须大于 0")
	ErrInvalidPurchase = errors.New("购买凭证不完整")
)
