// Package statsdto chứa DTO cho domain Statistics (dashboard, alerts, export, activity).
package statsdto

import "time"

// MentorStats thống kê mentor: tổng, đang khả dụng, tỷ lệ khả dụng (%).
type MentorStats struct {
	Total            int64 `json:"total"`
	Active           int64 `json:"active"`
	AvailabilityRate int   `json:"availability_rate"`
}

// MenteeStats thống kê mentee: tổng và số đang chờ ghép cặp.
type MenteeStats struct {
	Total   int64 `json:"total"`
	Waiting int64 `json:"waiting"`
}

// UserStats thống kê người dùng theo vai trò.
type UserStats struct {
	Mentors MentorStats `json:"mentors"`
	Mentees MenteeStats `json:"mentees"`
}

// MatchingStats thống kê gợi ý matching trong khoảng thời gian.
// Successful = số gợi ý có compatibilityScore >= 80.
type MatchingStats struct {
	Total       int64   `json:"total"`
	Successful  int64   `json:"successful"`
	SuccessRate int     `json:"success_rate"`
	AvgScore    float64 `json:"avg_score"`
	LastScore   float64 `json:"last_score"`
}

// SessionStats thống kê phiên mentoring trong khoảng thời gian.
// AvgDuration tính trên các phiên completed (phút, làm tròn).
type SessionStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	CompletionRate int   `json:"completion_rate"`
	AvgDuration    int64 `json:"avg_duration"`
	Today          int64 `json:"today"`
}

// MessageStats thống kê tin nhắn.
type MessageStats struct {
	TotalToday int64 `json:"totalToday"`
}

// FeedbackStats thống kê feedback (nhúng trong session).
// SatisfactionRate = tỷ lệ feedback có rating >= 4 (%).
type FeedbackStats struct {
	Total            int64   `json:"total"`
	AvgScore         float64 `json:"avg_score"`
	SatisfactionRate int     `json:"satisfaction_rate"`
}

// PeriodStats kết quả tổng hợp cho một khoảng thời gian.
// Tính on-demand, không lưu trữ (trừ khi snapshot hàng ngày).
type PeriodStats struct {
	Users    UserStats     `json:"users"`
	Matching MatchingStats `json:"matching"`
	Sessions SessionStats  `json:"sessions"`
	Messages MessageStats  `json:"messages"`
	Feedback FeedbackStats `json:"feedback"`
	Alerts   []Alert       `json:"alerts,omitempty"`
}

// Alert cảnh báo khi metric vượt ngưỡng. Không persist - tính lại mỗi request.
type Alert struct {
	Type         string  `json:"type"`     // warning | critical
	Category     string  `json:"category"` // mentors | matching | sessions | feedback
	Message      string  `json:"message"`
	Threshold    float64 `json:"threshold"`
	CurrentValue float64 `json:"current_value"`
}

// TrendStats phần trăm thay đổi so với snapshot ngày hôm qua (1 chữ số thập phân).
// Tất cả = 0 khi chưa có snapshot hôm qua.
type TrendStats struct {
	TotalUsers          float64 `json:"totalUsers"`
	ActiveMentors       float64 `json:"activeMentors"`
	SessionsToday       float64 `json:"sessionsToday"`
	MessagesToday       float64 `json:"messagesToday"`
	FeedbackAvg         float64 `json:"feedbackAvg"`
	MatchingSuccessRate float64 `json:"matchingSuccessRate"`
}

// DashboardResult kết quả cho dashboard: stats + trends + alerts.
type DashboardResult struct {
	Stats  *PeriodStats `json:"stats"`
	Trends *TrendStats  `json:"trends"`
	Alerts []Alert      `json:"alerts"`
}

// DistributionBucket một bucket trong phân phối điểm tương thích matching.
type DistributionBucket struct {
	Range string `json:"range"` // "0-10", ..., "90-100", "OutOfRange"
	Count int64  `json:"count"`
}

// TimeSeriesPoint một điểm trong chuỗi giá trị theo ngày.
type TimeSeriesPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// ActivityItem một mục trong feed hoạt động gần đây, merge từ 4 domain.
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`     // user | session | matching | message
	Severity  string    `json:"severity"` // info | warning
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityResult feed hoạt động có phân trang.
type ActivityResult struct {
	Items  []ActivityItem `json:"items"`
	Total  int            `json:"total"` // Tổng số item sau merge (trước phân trang)
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// StatsQuery query chung cho các endpoint thống kê.
// Explicit from/to luôn thắng period. Date format: YYYY-MM-DD.
type StatsQuery struct {
	Period string `query:"period" validate:"stats_period"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// TimeSeriesQuery query cho GET timeseries.
type TimeSeriesQuery struct {
	Metric string `query:"metric" validate:"required,stats_metric"`
	Period string `query:"period" validate:"stats_period"`
}

// ExportQuery query cho GET export / report.
type ExportQuery struct {
	Format   string `query:"format" validate:"export_format"`
	Sections string `query:"sections"` // Danh sách section phân cách bằng dấu phẩy, rỗng = tất cả
	Period   string `query:"period" validate:"stats_period"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// ActivityQuery query cho GET activity.
type ActivityQuery struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Type   string `query:"type"` // user | session | matching | message, rỗng = tất cả
}

// ExportResult tài liệu đã render cùng metadata.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"-"`
}
