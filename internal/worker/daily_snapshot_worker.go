// Package worker chứa các job chạy nền. daily_snapshot_worker chốt thống kê
// ngày hôm qua vào statistics_snapshots theo lịch cron.
package worker

import (
	"context"
	"time"

	statssvc "my_godfather/internal/api/stats/service"
	"my_godfather/internal/logger"

	"github.com/robfig/cron/v3"
)

// DailySnapshotWorker chạy SnapshotYesterday theo lịch cron (mặc định 00:10
// theo timezone tham chiếu). Job idempotent ở tầng storage (upsert-by-date)
// nên trigger trùng hay retry đều an toàn; job lỗi chỉ log, lần chạy hôm sau
// tự upsert lại, không ảnh hưởng request nào đang chạy.
type DailySnapshotWorker struct {
	cron         *cron.Cron
	statsService *statssvc.StatsService
	spec         string
}

// NewDailySnapshotWorker tạo worker với lịch cron 5 trường (phút giờ ngày tháng thứ).
func NewDailySnapshotWorker(statsService *statssvc.StatsService, spec string, loc *time.Location) *DailySnapshotWorker {
	if loc == nil {
		loc = time.UTC
	}
	if spec == "" {
		spec = "10 0 * * *"
	}
	return &DailySnapshotWorker{
		cron:         cron.New(cron.WithLocation(loc)),
		statsService: statsService,
		spec:         spec,
	}
}

// Start đăng ký job và chạy scheduler nền.
func (w *DailySnapshotWorker) Start() error {
	log := logger.GetAppLogger()

	_, err := w.cron.AddFunc(w.spec, func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("📊 [SNAPSHOT] Panic khi chốt thống kê, chờ lần chạy tiếp theo")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		snap, err := w.statsService.SnapshotYesterday(ctx)
		if err != nil {
			log.WithError(err).Error("📊 [SNAPSHOT] Lỗi chốt thống kê ngày hôm qua")
			return
		}
		log.WithFields(map[string]interface{}{
			"date":       snap.Date.Format("2006-01-02"),
			"totalUsers": snap.TotalUsers,
			"sessions":   snap.SessionsTotal,
		}).Info("📊 [SNAPSHOT] Đã chốt thống kê ngày hôm qua")
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	log.WithField("spec", w.spec).Info("📊 [SNAPSHOT] Daily snapshot worker started")
	return nil
}

// Stop dừng scheduler, chờ job đang chạy xong.
func (w *DailySnapshotWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.GetAppLogger().Info("📊 [SNAPSHOT] Daily snapshot worker stopped")
}

// RunNow chạy job ngay lập tức (trigger thủ công, không qua lịch).
func (w *DailySnapshotWorker) RunNow(ctx context.Context) error {
	_, err := w.statsService.SnapshotYesterday(ctx)
	return err
}
