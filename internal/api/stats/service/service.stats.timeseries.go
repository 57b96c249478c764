// File: service.stats.timeseries.go - chuỗi giá trị theo ngày cho một metric.
package statssvc

import (
	"context"
	"fmt"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
	"my_godfather/internal/common"
)

// Các metric hợp lệ cho time series.
const (
	MetricSessions  = "sessions"
	MetricMessages  = "messages"
	MetricUsers     = "users"
	MetricFeedback  = "feedback"
	MetricMatchings = "matchings"
)

// GetTimeSeries tính giá trị metric cho từng ngày trong period, trả về danh sách
// {date, value} tăng dần theo ngày - đúng một entry mỗi ngày, kể cả ngày không
// có dữ liệu (value 0). Metric đếm theo ngày, riêng feedback là trung bình ngày.
// Metric lạ trả về ErrInvalidInput trước khi chạy bất kỳ query nào.
func (s *StatsService) GetTimeSeries(ctx context.Context, metric, period string) ([]statsdto.TimeSeriesPoint, error) {
	switch metric {
	case MetricSessions, MetricMessages, MetricUsers, MetricFeedback, MetricMatchings:
	default:
		return nil, fmt.Errorf("metric không hợp lệ %q: %w", metric, common.ErrInvalidInput)
	}

	start, end, err := s.ResolveRange(period, "", "")
	if err != nil {
		return nil, err
	}

	var series []statsdto.TimeSeriesPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayStart := s.startOfDay(day)
		dayEnd := s.endOfDay(day)

		value, err := s.metricForDay(ctx, metric, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		series = append(series, statsdto.TimeSeriesPoint{
			Date:  dayStart.Format(dateLayout),
			Value: value,
		})
	}
	if series == nil {
		series = []statsdto.TimeSeriesPoint{}
	}
	return series, nil
}

// metricForDay tính giá trị một metric cho đúng một ngày.
func (s *StatsService) metricForDay(ctx context.Context, metric string, dayStart, dayEnd time.Time) (float64, error) {
	switch metric {
	case MetricSessions:
		count, err := s.sessions.CountInRange(ctx, dayStart, dayEnd)
		return float64(count), err
	case MetricMessages:
		count, err := s.messages.CountInRange(ctx, dayStart, dayEnd)
		return float64(count), err
	case MetricUsers:
		count, err := s.users.CountCreatedInRange(ctx, dayStart, dayEnd)
		return float64(count), err
	case MetricMatchings:
		count, err := s.matching.CountInRange(ctx, dayStart, dayEnd)
		return float64(count), err
	case MetricFeedback:
		ratings, err := s.sessions.FeedbackInRange(ctx, dayStart, dayEnd)
		if err != nil {
			return 0, err
		}
		if len(ratings) == 0 {
			return 0, nil
		}
		sum := float64(0)
		for _, r := range ratings {
			sum += r
		}
		return round1(sum / float64(len(ratings))), nil
	}
	return 0, fmt.Errorf("metric không hợp lệ %q: %w", metric, common.ErrInvalidInput)
}
