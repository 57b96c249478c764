// File: service.stats.metrics.go - 4 aggregator độc lập: users, matching, sessions, feedback.
// Mỗi aggregator query đúng một domain và trả về summary đã tính tỷ lệ/làm tròn.
package statssvc

import (
	"context"
	"math"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
	statssrc "my_godfather/internal/api/stats/source"
)

// successfulScore ngưỡng coi một gợi ý matching là thành công.
const successfulScore = 80

// satisfiedRating ngưỡng rating coi một feedback là hài lòng.
const satisfiedRating = 4

// userMetrics thống kê user theo role (số liệu lũy kế, không theo range).
// Mentor active = availability true. Mentee waiting = mentee chưa có pair
// active/completed (hiệu tập hợp giữa users và pairs).
func (s *StatsService) userMetrics(ctx context.Context) (statsdto.UserStats, error) {
	var out statsdto.UserStats

	groups, err := s.users.RoleGroups(ctx)
	if err != nil {
		return out, err
	}
	for _, g := range groups {
		switch g.Role {
		case statssrc.RoleMentor:
			out.Mentors.Total = g.Total
			out.Mentors.Active = g.Active
		case statssrc.RoleMentee:
			out.Mentees.Total = g.Total
		}
	}
	out.Mentors.AvailabilityRate = rate(out.Mentors.Active, out.Mentors.Total)

	menteeIDs, err := s.users.MenteeIDs(ctx)
	if err != nil {
		return out, err
	}
	pairedIDs, err := s.pairs.PairedMenteeIDs(ctx)
	if err != nil {
		return out, err
	}
	paired := make(map[string]struct{}, len(pairedIDs))
	for _, id := range pairedIDs {
		paired[id.Hex()] = struct{}{}
	}
	for _, id := range menteeIDs {
		if _, ok := paired[id.Hex()]; !ok {
			out.Mentees.Waiting++
		}
	}
	return out, nil
}

// matchingMetrics thống kê gợi ý matching trong [start, end].
// Successful = score >= 80. AvgScore 1 chữ số thập phân.
// LastScore = score gợi ý đầu tiên của log mới nhất (không giới hạn range).
func (s *StatsService) matchingMetrics(ctx context.Context, start, end time.Time) (statsdto.MatchingStats, error) {
	var out statsdto.MatchingStats

	scores, err := s.matching.ScoresInRange(ctx, start, end)
	if err != nil {
		return out, err
	}
	sum := float64(0)
	for _, sc := range scores {
		sum += sc
		if sc >= successfulScore {
			out.Successful++
		}
	}
	out.Total = int64(len(scores))
	out.SuccessRate = rate(out.Successful, out.Total)
	if out.Total > 0 {
		out.AvgScore = round1(sum / float64(out.Total))
	}

	last, err := s.matching.LatestFirstScore(ctx)
	if err != nil {
		return out, err
	}
	out.LastScore = last
	return out, nil
}

// sessionMetrics thống kê phiên trong [start, end]. AvgDuration chỉ tính trên
// các phiên completed, làm tròn về phút nguyên. Today được composer điền sau.
func (s *StatsService) sessionMetrics(ctx context.Context, start, end time.Time) (statsdto.SessionStats, error) {
	var out statsdto.SessionStats

	groups, err := s.sessions.StatusGroups(ctx, start, end)
	if err != nil {
		return out, err
	}
	var completedDuration int64
	for _, g := range groups {
		out.Total += g.Count
		if g.Status == statssrc.SessionCompleted {
			out.Completed += g.Count
			completedDuration += g.TotalDuration
		}
	}
	out.CompletionRate = rate(out.Completed, out.Total)
	if out.Completed > 0 {
		out.AvgDuration = int64(math.Round(float64(completedDuration) / float64(out.Completed)))
	}
	return out, nil
}

// feedbackMetrics thống kê feedback nhúng trong session thuộc [start, end].
// SatisfactionRate = tỷ lệ rating >= 4.
func (s *StatsService) feedbackMetrics(ctx context.Context, start, end time.Time) (statsdto.FeedbackStats, error) {
	var out statsdto.FeedbackStats

	ratings, err := s.sessions.FeedbackInRange(ctx, start, end)
	if err != nil {
		return out, err
	}
	sum := float64(0)
	var satisfied int64
	for _, r := range ratings {
		sum += r
		if r >= satisfiedRating {
			satisfied++
		}
	}
	out.Total = int64(len(ratings))
	out.SatisfactionRate = rate(satisfied, out.Total)
	if out.Total > 0 {
		out.AvgScore = round1(sum / float64(out.Total))
	}
	return out, nil
}
