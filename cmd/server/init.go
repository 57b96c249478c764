package main

import (
	"context"

	"my_godfather/config"
	"my_godfather/internal/database"
	"my_godfather/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Pairs = "mentor_mentee_pairs"
	global.MongoDB_ColNames.Sessions = "sessions"
	global.MongoDB_ColNames.Messages = "messages"
	global.MongoDB_ColNames.MatchingLogs = "matching_logs"

	// Statistics Collections (sở hữu bởi subsystem thống kê)
	global.MongoDB_ColNames.StatisticsSnapshots = "statistics_snapshots"

	// Delivery System Collections
	global.MongoDB_ColNames.DeliveryQueue = "delivery_queue"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: stats_metric, stats_period, export_format)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các index cho các collection được engine thống kê query
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	if err := database.CreateStatsIndexes(context.TODO(), global.MongoDB_Session.Database(dbName)); err != nil {
		logrus.Errorf("Failed to create statistics indexes: %v", err)
		// Không fatal, engine vẫn chạy được khi thiếu index (chỉ chậm hơn)
	} else {
		logrus.Info("Created statistics indexes")
	}
}
