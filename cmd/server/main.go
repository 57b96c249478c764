package main

import (
	"fmt"
	"time"

	statssvc "my_godfather/internal/api/stats/service"
	"my_godfather/internal/global"
	"my_godfather/internal/logger"
	"my_godfather/internal/notification"
	"my_godfather/internal/worker"

	"github.com/gofiber/fiber/v3"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// statsLocation trả về timezone tham chiếu cho thống kê theo ngày.
// Timezone không hợp lệ thì fallback về UTC để engine vẫn chạy được.
func statsLocation() *time.Location {
	cfg := global.MongoDB_ServerConfig
	loc, err := time.LoadLocation(cfg.StatsTimezone)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warnf("Timezone %s không hợp lệ, dùng UTC", cfg.StatsTimezone)
		return time.UTC
	}
	return loc
}

// newStatsService lắp ráp service thống kê từ cấu hình:
// timezone tham chiếu, ngưỡng cảnh báo và dispatcher thông báo.
func newStatsService(loc *time.Location) *statssvc.StatsService {
	cfg := global.MongoDB_ServerConfig

	thresholds := statssvc.AlertThresholds{
		MentorAvailability: cfg.AlertMentorAvailability,
		MatchingSuccess:    cfg.AlertMatchingSuccess,
		SessionCompletion:  cfg.AlertSessionCompletion,
		FeedbackScore:      cfg.AlertFeedbackScore,
	}

	// Queue dispatcher ghi vào delivery_queue; email dispatcher tự bỏ qua
	// khi SMTP hoặc danh sách người nhận chưa được cấu hình.
	dispatcher := notification.NewMultiDispatcher(
		notification.NewQueueDispatcher(),
		notification.NewEmailDispatcher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.AlertEmailTo),
	)

	return statssvc.NewMongoStatsService(loc, thresholds, dispatcher)
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Lắp ráp service thống kê
	loc := statsLocation()
	statsService := newStatsService(loc)

	// Khởi tạo và chạy worker snapshot hàng ngày (background worker)
	log := logger.GetAppLogger()
	snapshotWorker := worker.NewDailySnapshotWorker(statsService, global.MongoDB_ServerConfig.SnapshotCron, loc)
	if err := snapshotWorker.Start(); err != nil {
		log.WithError(err).Error("Failed to start snapshot worker, continuing without daily snapshot")
	} else {
		log.Info("📊 [SNAPSHOT] Daily snapshot worker started successfully")
	}

	// Khởi tạo app với cấu hình
	app := InitFiberApp(statsService)

	// Chạy Fiber server trên main thread
	main_thread(app)
}
