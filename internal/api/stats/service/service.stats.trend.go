// File: service.stats.trend.go - trend so với snapshot hôm qua + dashboard tổng hợp.
package statssvc

import (
	"context"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
)

// ComputeTrends so sánh stats hiện tại với snapshot ngày hôm qua.
// Chưa có snapshot hôm qua thì mọi trend = 0, không phải lỗi.
func (s *StatsService) ComputeTrends(ctx context.Context, current *statsdto.PeriodStats) (*statsdto.TrendStats, error) {
	yesterday := time.Now().In(s.loc).AddDate(0, 0, -1)
	snap, err := s.snapshots.FindByDate(ctx, yesterday)
	if err != nil {
		return nil, err
	}
	trends := &statsdto.TrendStats{}
	if snap == nil {
		return trends, nil
	}

	totalUsers := current.Users.Mentors.Total + current.Users.Mentees.Total
	trends.TotalUsers = trend(float64(totalUsers), float64(snap.TotalUsers))
	trends.ActiveMentors = trend(float64(current.Users.Mentors.Active), float64(snap.ActiveMentors))
	trends.SessionsToday = trend(float64(current.Sessions.Today), float64(snap.SessionsToday))
	trends.MessagesToday = trend(float64(current.Messages.TotalToday), float64(snap.MessagesToday))
	trends.FeedbackAvg = trend(current.Feedback.AvgScore, snap.FeedbackAvgScore)
	trends.MatchingSuccessRate = trend(float64(current.Matching.SuccessRate), float64(snap.MatchingSuccessRate))
	return trends, nil
}

// GetDashboard trả về stats + trends + alerts cho [start, end].
// Alert nổ được forward cho dispatcher (lỗi gửi không ảnh hưởng response).
func (s *StatsService) GetDashboard(ctx context.Context, start, end time.Time) (*statsdto.DashboardResult, error) {
	stats, err := s.GetPeriodStats(ctx, start, end)
	if err != nil {
		return nil, err
	}
	trends, err := s.ComputeTrends(ctx, stats)
	if err != nil {
		return nil, err
	}
	alerts := s.EvaluateAlerts(stats)
	s.dispatchAlerts(ctx, alerts)
	stats.Alerts = alerts

	return &statsdto.DashboardResult{
		Stats:  stats,
		Trends: trends,
		Alerts: alerts,
	}, nil
}
