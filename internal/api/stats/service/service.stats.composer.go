// File: service.stats.composer.go - fan-out 4 aggregator + 2 point count, gộp thành PeriodStats.
package statssvc

import (
	"context"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"

	"golang.org/x/sync/errgroup"
)

// GetPeriodStats chạy đồng thời 4 aggregator cho [start, end] cùng 2 point count
// (session hôm nay, message hôm nay) rồi gộp thành PeriodStats.
func (s *StatsService) GetPeriodStats(ctx context.Context, start, end time.Time) (*statsdto.PeriodStats, error) {
	now := time.Now().In(s.loc)
	return s.composePeriodStats(ctx, start, end, s.startOfDay(now), s.endOfDay(now))
}

// composePeriodStats là phần lõi: [start, end] cho 4 aggregator, [pointStart,
// pointEnd] là cửa sổ riêng cho 2 point count (Sessions.Today,
// Messages.TotalToday) - ngày hiện tại trên read path, ngày tham chiếu trên
// snapshot path (snapshot của hôm qua phải lưu số đếm của hôm qua).
// Bất kỳ query nào lỗi thì toàn bộ request lỗi - không bao giờ trả về
// composite thiếu domain, vì alert/trend phía sau cần dữ liệu đầy đủ.
func (s *StatsService) composePeriodStats(ctx context.Context, start, end, pointStart, pointEnd time.Time) (*statsdto.PeriodStats, error) {
	stats := &statsdto.PeriodStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.userMetrics(gctx)
		if err != nil {
			return err
		}
		stats.Users = users
		return nil
	})
	g.Go(func() error {
		matching, err := s.matchingMetrics(gctx, start, end)
		if err != nil {
			return err
		}
		stats.Matching = matching
		return nil
	})
	g.Go(func() error {
		sessions, err := s.sessionMetrics(gctx, start, end)
		if err != nil {
			return err
		}
		today, err := s.sessions.CountInRange(gctx, pointStart, pointEnd)
		if err != nil {
			return err
		}
		sessions.Today = today
		stats.Sessions = sessions
		return nil
	})
	g.Go(func() error {
		feedback, err := s.feedbackMetrics(gctx, start, end)
		if err != nil {
			return err
		}
		stats.Feedback = feedback
		return nil
	})
	g.Go(func() error {
		count, err := s.messages.CountInRange(gctx, pointStart, pointEnd)
		if err != nil {
			return err
		}
		stats.Messages.TotalToday = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
