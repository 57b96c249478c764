package global

import (
	"my_godfather/config"
	"my_godfather/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users        string // Tên collection cho người dùng (mentor, mentee, HR, admin)
	Pairs        string // Tên collection cho cặp mentor-mentee
	Sessions     string // Tên collection cho phiên mentoring (feedback nhúng trong session)
	Messages     string // Tên collection cho tin nhắn
	MatchingLogs string // Tên collection cho log gợi ý matching (append-only)

	// Statistics Collections (sở hữu bởi subsystem thống kê)
	StatisticsSnapshots string // Tên collection cho snapshot thống kê theo ngày

	// Delivery System Collections
	DeliveryQueue string // Tên collection cho hàng đợi gửi thông báo
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
