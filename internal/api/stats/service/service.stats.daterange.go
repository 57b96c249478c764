// File: service.stats.daterange.go - quy đổi period/from/to thành mốc [start, end].
package statssvc

import (
	"fmt"
	"time"

	"my_godfather/internal/common"
)

// Các period hợp lệ cho query thống kê.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

const dateLayout = "2006-01-02"

// startOfDay trả về 00:00:00.000 của ngày chứa t theo location của service.
func (s *StatsService) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// endOfDay trả về 23:59:59.999 của ngày chứa t theo location của service.
func (s *StatsService) endOfDay(t time.Time) time.Time {
	return s.startOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// ResolveRange quy đổi (period, from, to) thành mốc [start, end] theo timezone
// tham chiếu. from/to dạng YYYY-MM-DD và luôn thắng period khi có mặt cả hai.
//   - day:   hôm nay
//   - week:  7 ngày gần nhất tính cả hôm nay
//   - month: từ đầu tháng đến hết hôm nay
//
// Period rỗng mặc định là day. from/to sai định dạng trả về ErrInvalidFormat.
func (s *StatsService) ResolveRange(period, from, to string) (time.Time, time.Time, error) {
	if from != "" || to != "" {
		return s.resolveExplicit(from, to)
	}

	now := time.Now().In(s.loc)
	switch period {
	case PeriodWeek:
		return s.startOfDay(now.AddDate(0, 0, -6)), s.endOfDay(now), nil
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		return first, s.endOfDay(now), nil
	case PeriodDay, "":
		return s.startOfDay(now), s.endOfDay(now), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("period không hợp lệ %q: %w", period, common.ErrInvalidInput)
	}
}

// resolveExplicit xử lý from/to tường minh. Thiếu một đầu thì đầu đó lấy theo
// đầu còn lại (range một ngày).
func (s *StatsService) resolveExplicit(from, to string) (time.Time, time.Time, error) {
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, err := time.ParseInLocation(dateLayout, from, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from không hợp lệ %q: %w", from, common.ErrInvalidFormat)
	}
	end, err := time.ParseInLocation(dateLayout, to, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to không hợp lệ %q: %w", to, common.ErrInvalidFormat)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("to trước from: %w", common.ErrInvalidInput)
	}
	return s.startOfDay(start), s.endOfDay(end), nil
}
