package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// stats_metric: tên metric hợp lệ cho time series
	_ = Validate.RegisterValidation("stats_metric", validateStatsMetric)

	// stats_period: period token hợp lệ cho date range
	_ = Validate.RegisterValidation("stats_period", validateStatsPeriod)

	// export_format: định dạng export hợp lệ
	_ = Validate.RegisterValidation("export_format", validateExportFormat)
}

// validateStatsMetric kiểm tra metric thuộc danh sách cho phép
func validateStatsMetric(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "sessions", "messages", "users", "feedback", "matchings":
		return true
	}
	return false
}

// validateStatsPeriod kiểm tra period token hợp lệ (rỗng = mặc định day)
func validateStatsPeriod(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", "day", "week", "month":
		return true
	}
	return false
}

// validateExportFormat kiểm tra định dạng export hợp lệ
func validateExportFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "table", "csv", "json":
		return true
	}
	return false
}
