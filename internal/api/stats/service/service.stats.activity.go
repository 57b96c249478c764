// File: service.stats.activity.go - feed hoạt động gần đây merge từ 4 domain.
package statssvc

import (
	"context"
	"fmt"
	"sort"

	statsdto "my_godfather/internal/api/stats/dto"
	statssrc "my_godfather/internal/api/stats/source"
	"my_godfather/internal/common"
)

// Type của activity item, trùng tên domain nguồn.
const (
	ActivityUser     = "user"
	ActivitySession  = "session"
	ActivityMatching = "matching"
	ActivityMessage  = "message"
)

// activityFetchCap số record tối đa lấy từ mỗi domain cho một request.
// Fetch bị chặn trên nên offset sâu hơn cap có thể thiếu item - đánh đổi
// có chủ đích để không quét cả bảng.
const activityFetchCap = 100

// defaultActivityLimit limit mặc định khi caller không truyền.
const defaultActivityLimit = 10

// GetRecentActivity merge tối đa 100 record mới nhất của mỗi domain thành một
// feed giảm dần theo thời gian rồi phân trang offset/limit. Truyền type thì
// chỉ fetch domain đó. Type lạ trả về ErrInvalidInput.
func (s *StatsService) GetRecentActivity(ctx context.Context, query statsdto.ActivityQuery) (*statsdto.ActivityResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	type domainFetch struct {
		name  string
		fetch func(context.Context, int64) ([]statssrc.ActivityRecord, error)
	}
	// Thứ tự cố định: item cùng timestamp luôn xếp theo thứ tự này
	// (sort phía dưới là stable), phân trang không đổi giữa các request.
	domains := []domainFetch{
		{ActivityUser, s.users.RecentN},
		{ActivitySession, s.sessions.RecentN},
		{ActivityMatching, s.matching.RecentN},
		{ActivityMessage, s.messages.RecentN},
	}
	if query.Type != "" {
		found := false
		for _, d := range domains {
			if d.name == query.Type {
				domains = []domainFetch{d}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("type không hợp lệ %q: %w", query.Type, common.ErrInvalidInput)
		}
	}

	var items []statsdto.ActivityItem
	for _, d := range domains {
		records, err := d.fetch(ctx, activityFetchCap)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			severity := "info"
			if r.Warning {
				severity = "warning"
			}
			items = append(items, statsdto.ActivityItem{
				ID:        r.ID,
				Type:      d.name,
				Severity:  severity,
				Message:   r.Summary,
				Timestamp: r.Timestamp,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	total := len(items)
	if offset > total {
		offset = total
	}
	endIdx := offset + limit
	if endIdx > total {
		endIdx = total
	}
	page := items[offset:endIdx]
	if page == nil {
		page = []statsdto.ActivityItem{}
	}
	return &statsdto.ActivityResult{
		Items:  page,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
