// File: service.stats.alerts.go - đánh giá ngưỡng cảnh báo trên PeriodStats.
package statssvc

import (
	"context"
	"fmt"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
	"my_godfather/internal/logger"
)

// Loại cảnh báo.
const (
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Category cảnh báo.
const (
	CategoryMentors  = "mentors"
	CategoryMatching = "matching"
	CategorySessions = "sessions"
	CategoryFeedback = "feedback"
)

// AlertThresholds bảng ngưỡng cảnh báo. Metric nhỏ hơn ngưỡng (so sánh chặt)
// thì cảnh báo nổ - bằng ngưỡng thì không.
type AlertThresholds struct {
	MentorAvailability float64 // % khả dụng mentor tối thiểu
	MatchingSuccess    float64 // % matching thành công tối thiểu
	SessionCompletion  float64 // % phiên hoàn thành tối thiểu
	FeedbackScore      float64 // điểm feedback trung bình tối thiểu (thang 5)
}

// DefaultAlertThresholds ngưỡng mặc định khi không cấu hình.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		MentorAvailability: 30,
		MatchingSuccess:    70,
		SessionCompletion:  80,
		FeedbackScore:      3.5,
	}
}

// EvaluateAlerts đánh giá PeriodStats trên bảng ngưỡng, trả về các cảnh báo nổ.
// Thuần túy - không side effect, không đọc datastore.
func (s *StatsService) EvaluateAlerts(stats *statsdto.PeriodStats) []statsdto.Alert {
	alerts := []statsdto.Alert{}

	if v := float64(stats.Users.Mentors.AvailabilityRate); v < s.thresholds.MentorAvailability {
		alerts = append(alerts, statsdto.Alert{
			Type:         AlertCritical,
			Category:     CategoryMentors,
			Message:      fmt.Sprintf("Tỷ lệ mentor khả dụng thấp: %.0f%% (ngưỡng %.0f%%)", v, s.thresholds.MentorAvailability),
			Threshold:    s.thresholds.MentorAvailability,
			CurrentValue: v,
		})
	}
	if v := float64(stats.Matching.SuccessRate); v < s.thresholds.MatchingSuccess {
		alerts = append(alerts, statsdto.Alert{
			Type:         AlertWarning,
			Category:     CategoryMatching,
			Message:      fmt.Sprintf("Tỷ lệ matching thành công thấp: %.0f%% (ngưỡng %.0f%%)", v, s.thresholds.MatchingSuccess),
			Threshold:    s.thresholds.MatchingSuccess,
			CurrentValue: v,
		})
	}
	if v := float64(stats.Sessions.CompletionRate); v < s.thresholds.SessionCompletion {
		alerts = append(alerts, statsdto.Alert{
			Type:         AlertWarning,
			Category:     CategorySessions,
			Message:      fmt.Sprintf("Tỷ lệ phiên hoàn thành thấp: %.0f%% (ngưỡng %.0f%%)", v, s.thresholds.SessionCompletion),
			Threshold:    s.thresholds.SessionCompletion,
			CurrentValue: v,
		})
	}
	if v := stats.Feedback.AvgScore; v < s.thresholds.FeedbackScore {
		alerts = append(alerts, statsdto.Alert{
			Type:         AlertWarning,
			Category:     CategoryFeedback,
			Message:      fmt.Sprintf("Điểm feedback trung bình thấp: %.1f/5 (ngưỡng %.1f)", v, s.thresholds.FeedbackScore),
			Threshold:    s.thresholds.FeedbackScore,
			CurrentValue: v,
		})
	}
	return alerts
}

// dispatchAlerts forward từng cảnh báo cho dispatcher (một call mỗi cảnh báo).
// Gửi lỗi chỉ log - danh sách cảnh báo trả về không bị ảnh hưởng.
func (s *StatsService) dispatchAlerts(ctx context.Context, alerts []statsdto.Alert) {
	if s.dispatcher == nil {
		return
	}
	log := logger.GetAppLogger()
	for _, a := range alerts {
		err := s.dispatcher.Notify(ctx, "admin", "Cảnh báo thống kê", a.Message, a.Type, a.Category)
		if err != nil && log != nil {
			log.WithError(err).WithField("category", a.Category).Warn("⚠️ [ALERT] Gửi cảnh báo thất bại")
		}
	}
}

// GetAlerts tính PeriodStats cho [start, end], đánh giá ngưỡng và forward
// các cảnh báo nổ cho dispatcher.
func (s *StatsService) GetAlerts(ctx context.Context, start, end time.Time) ([]statsdto.Alert, error) {
	stats, err := s.GetPeriodStats(ctx, start, end)
	if err != nil {
		return nil, err
	}
	alerts := s.EvaluateAlerts(stats)
	s.dispatchAlerts(ctx, alerts)
	return alerts, nil
}
