// Package statssvc chứa engine tổng hợp thống kê: KPI theo khoảng thời gian,
// trend so với snapshot hôm qua, cảnh báo theo ngưỡng, snapshot hàng ngày,
// phân phối điểm matching, time series, export và feed hoạt động.
// File: service.stats.go - struct chính + các helper làm tròn dùng chung.
package statssvc

import (
	"context"
	"math"
	"time"

	statssrc "my_godfather/internal/api/stats/source"
)

// Dispatcher gửi cảnh báo ra ngoài (email, queue...). Gửi lỗi không làm hỏng
// kết quả đánh giá cảnh báo.
type Dispatcher interface {
	Notify(ctx context.Context, targetRole, title, message, severity, category string) error
}

// StatsService engine tổng hợp thống kê. Toàn bộ query đi qua các source
// interface nên service test được với source giả.
type StatsService struct {
	users     statssrc.UserSource
	pairs     statssrc.PairSource
	matching  statssrc.MatchingSource
	sessions  statssrc.SessionSource
	messages  statssrc.MessageSource
	snapshots statssrc.SnapshotStore

	loc        *time.Location // timezone tham chiếu cho mọi mốc ngày
	thresholds AlertThresholds
	dispatcher Dispatcher // nil = không gửi cảnh báo ra ngoài
}

// NewStatsService tạo StatsService. dispatcher có thể nil.
func NewStatsService(
	users statssrc.UserSource,
	pairs statssrc.PairSource,
	matching statssrc.MatchingSource,
	sessions statssrc.SessionSource,
	messages statssrc.MessageSource,
	snapshots statssrc.SnapshotStore,
	loc *time.Location,
	thresholds AlertThresholds,
	dispatcher Dispatcher,
) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		users:      users,
		pairs:      pairs,
		matching:   matching,
		sessions:   sessions,
		messages:   messages,
		snapshots:  snapshots,
		loc:        loc,
		thresholds: thresholds,
		dispatcher: dispatcher,
	}
}

// NewMongoStatsService tạo StatsService với toàn bộ source đọc MongoDB qua registry.
func NewMongoStatsService(loc *time.Location, thresholds AlertThresholds, dispatcher Dispatcher) *StatsService {
	return NewStatsService(
		statssrc.NewMongoUserSource(),
		statssrc.NewMongoPairSource(),
		statssrc.NewMongoMatchingSource(),
		statssrc.NewMongoSessionSource(),
		statssrc.NewMongoMessageSource(),
		statssrc.NewMongoSnapshotStore(),
		loc, thresholds, dispatcher,
	)
}

// rate tính tỷ lệ phần trăm làm tròn về số nguyên. Mẫu số 0 trả về 0,
// không bao giờ chia cho 0 hay trả NaN. Kết quả luôn trong [0, 100]
// khi numerator <= denominator.
func rate(numerator, denominator int64) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

// round1 làm tròn 1 chữ số thập phân.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// trend phần trăm thay đổi so với baseline, 1 chữ số thập phân.
// Baseline 0 (hoặc chưa có snapshot) trả về 0, không phải lỗi.
func trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 10
}
