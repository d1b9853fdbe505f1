package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"canyin_dev_v1_202602/internal/repository"
)

// MaintenanceTask 后台维护任务：
// 1. 长时间停留在"清理中"的桌位放回空闲
// 2. 清理过期的已读通知
type MaintenanceTask struct {
	TableRepo repository.TableRepository
	NotifRepo repository.NotificationRepository
	Cron      *cron.Cron

	log zerolog.Logger

	// 桌位在"清理中"停留多久算滞留
	staleCleaningAfter time.Duration
	// 已读通知保留时长
	notifRetention time.Duration
}

// NewMaintenanceTask 创建维护任务
func NewMaintenanceTask(tableRepo repository.TableRepository, notifRepo repository.NotificationRepository, log zerolog.Logger) *MaintenanceTask {
	return &MaintenanceTask{
		TableRepo:          tableRepo,
		NotifRepo:          notifRepo,
		Cron:               cron.New(cron.WithSeconds()),
		log:                log,
		staleCleaningAfter: 30 * time.Minute,
		notifRetention:     30 * 24 * time.Hour,
	}
}

// Start 启动定时任务
func (t *MaintenanceTask) Start() {
	// 每 10 分钟扫一次滞留桌位
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.releaseStaleTables(ctx)
	})
	if err != nil {
		t.log.Fatal().Err(err).Msg("无法启动桌位维护任务")
	}

	// 每天凌晨 3 点清理过期已读通知
	_, err = t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.purgeReadNotifications(ctx)
	})
	if err != nil {
		t.log.Fatal().Err(err).Msg("无法启动通知清理任务")
	}

	t.Cron.Start()
	t.log.Info().Msg("后台维护任务已启动")
}

// Stop 停止定时任务
func (t *MaintenanceTask) Stop() {
	t.Cron.Stop()
}

func (t *MaintenanceTask) releaseStaleTables(ctx context.Context) {
	released, err := t.TableRepo.ReleaseStaleCleaning(ctx, time.Now().Add(-t.staleCleaningAfter))
	if err != nil {
		t.log.Error().Err(err).Msg("滞留桌位释放失败")
		return
	}
	if released > 0 {
		t.log.Info().Int64("released", released).Msg("滞留桌位已放回空闲")
	}
}

func (t *MaintenanceTask) purgeReadNotifications(ctx context.Context) {
	purged, err := t.NotifRepo.DeleteReadBefore(ctx, time.Now().Add(-t.notifRetention))
	if err != nil {
		t.log.Error().Err(err).Msg("过期通知清理失败")
		return
	}
	t.log.Info().Int64("purged", purged).Msg("过期已读通知清理完成")
}
