package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm thông tin cơ sở dữ liệu, timezone thống kê và cấu hình gửi thông báo.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Statistics Configuration
	StatsTimezone string `env:"STATS_TIMEZONE" envDefault:"Europe/Paris"` // Timezone tham chiếu cho thống kê theo ngày
	SnapshotCron  string `env:"SNAPSHOT_CRON" envDefault:"10 0 * * *"`    // Lịch chạy snapshot hàng ngày (cron 5 trường)

	// Alert Thresholds (để trống = dùng mặc định)
	AlertMentorAvailability float64 `env:"ALERT_MENTOR_AVAILABILITY" envDefault:"30"` // Ngưỡng tỷ lệ mentor khả dụng (%)
	AlertMatchingSuccess    float64 `env:"ALERT_MATCHING_SUCCESS" envDefault:"70"`    // Ngưỡng tỷ lệ matching thành công (%)
	AlertSessionCompletion  float64 `env:"ALERT_SESSION_COMPLETION" envDefault:"80"`  // Ngưỡng tỷ lệ hoàn thành session (%)
	AlertFeedbackScore      float64 `env:"ALERT_FEEDBACK_SCORE" envDefault:"3.5"`     // Ngưỡng điểm feedback trung bình (/5)

	// Email Notification Configuration (optional - dùng cho kênh email của dispatcher)
	SMTPHost     string `env:"SMTP_HOST"`                  // SMTP server host
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"` // SMTP server port
	SMTPUsername string `env:"SMTP_USERNAME"`              // SMTP username
	SMTPPassword string `env:"SMTP_PASSWORD"`              // SMTP password
	SMTPFrom     string `env:"SMTP_FROM"`                  // Địa chỉ gửi
	AlertEmailTo string `env:"ALERT_EMAIL_TO"`             // Danh sách email nhận alert, phân cách bằng dấu phẩy (optional)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
