// File: service.stats.snapshot.go - chốt thống kê một ngày vào statistics_snapshots.
package statssvc

import (
	"context"
	"time"

	statsmodels "my_godfather/internal/api/stats/models"
)

// SnapshotDailyStats tính PeriodStats cho cả ngày chứa referenceDate rồi
// upsert vào statistics_snapshots. Thuần túy với lịch trigger: scheduler nào
// gọi cũng được (cron, chạy tay, retry). Gọi lại trong cùng ngày ghi đè
// bản ghi cũ, không tạo trùng.
func (s *StatsService) SnapshotDailyStats(ctx context.Context, referenceDate time.Time) (*statsmodels.StatisticsSnapshot, error) {
	dayStart := s.startOfDay(referenceDate)
	dayEnd := s.endOfDay(referenceDate)

	// Point count của snapshot tính theo chính ngày tham chiếu, không phải
	// ngày đang chạy job: worker chạy lúc 00:10 chốt cho hôm qua.
	stats, err := s.composePeriodStats(ctx, dayStart, dayEnd, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	snap := &statsmodels.StatisticsSnapshot{
		Date: dayStart,

		TotalUsers:     stats.Users.Mentors.Total + stats.Users.Mentees.Total,
		Mentors:        stats.Users.Mentors.Total,
		ActiveMentors:  stats.Users.Mentors.Active,
		Mentees:        stats.Users.Mentees.Total,
		WaitingMentees: stats.Users.Mentees.Waiting,

		MatchingTotal:       stats.Matching.Total,
		MatchingSuccessful:  stats.Matching.Successful,
		MatchingSuccessRate: stats.Matching.SuccessRate,
		MatchingAvgScore:    stats.Matching.AvgScore,

		SessionsTotal:         stats.Sessions.Total,
		SessionsCompleted:     stats.Sessions.Completed,
		SessionCompletionRate: stats.Sessions.CompletionRate,
		SessionsToday:         stats.Sessions.Today,
		AvgSessionDuration:    stats.Sessions.AvgDuration,

		MessagesToday: stats.Messages.TotalToday,

		FeedbackTotal:    stats.Feedback.Total,
		FeedbackAvgScore: stats.Feedback.AvgScore,
		SatisfactionRate: stats.Feedback.SatisfactionRate,
	}
	if err := s.snapshots.Upsert(ctx, dayStart, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotYesterday entry point cho job hàng ngày: chốt thống kê ngày hôm qua.
func (s *StatsService) SnapshotYesterday(ctx context.Context) (*statsmodels.StatisticsSnapshot, error) {
	return s.SnapshotDailyStats(ctx, time.Now().In(s.loc).AddDate(0, 0, -1))
}
