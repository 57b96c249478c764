// Package statssvc - test đánh giá ngưỡng cảnh báo, đặc biệt các ca biên.
package statssvc

import (
	"context"
	"testing"

	statsdto "my_godfather/internal/api/stats/dto"
	statssrc "my_godfather/internal/api/stats/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 10 mentor, 3 khả dụng: rate đúng bằng ngưỡng 30 -> không nổ cảnh báo
// (so sánh chặt, bằng ngưỡng không tính).
func TestEvaluateAlerts_BangNguong_KhongNo(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)
	stats := &statsdto.PeriodStats{}
	stats.Users.Mentors.Total = 10
	stats.Users.Mentors.Active = 3
	stats.Users.Mentors.AvailabilityRate = rate(3, 10)
	require.Equal(t, 30, stats.Users.Mentors.AvailabilityRate)

	alerts := s.EvaluateAlerts(stats)
	for _, a := range alerts {
		assert.NotEqual(t, CategoryMentors, a.Category,
			"availability_rate = 30 đúng bằng ngưỡng, không được nổ cảnh báo mentor")
	}
}

// 0 mentor: rate = 0 (không chia cho 0) và cảnh báo mentor PHẢI nổ (0 < 30).
func TestEvaluateAlerts_KhongCoMentor_VanNo(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)
	stats := &statsdto.PeriodStats{}
	stats.Users.Mentors.AvailabilityRate = rate(0, 0)

	alerts := s.EvaluateAlerts(stats)
	var mentorAlert *statsdto.Alert
	for i := range alerts {
		if alerts[i].Category == CategoryMentors {
			mentorAlert = &alerts[i]
		}
	}
	require.NotNil(t, mentorAlert, "0 mentor phải nổ cảnh báo khả dụng")
	assert.Equal(t, AlertCritical, mentorAlert.Type)
	assert.Equal(t, float64(0), mentorAlert.CurrentValue)
	assert.Equal(t, float64(30), mentorAlert.Threshold)
}

// Mọi metric trên ngưỡng -> không có cảnh báo nào.
func TestEvaluateAlerts_TatCaTrenNguong(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)
	stats := &statsdto.PeriodStats{}
	stats.Users.Mentors.AvailabilityRate = 50
	stats.Matching.SuccessRate = 90
	stats.Sessions.CompletionRate = 95
	stats.Feedback.AvgScore = 4.2

	assert.Empty(t, s.EvaluateAlerts(stats))
}

// Feedback 3.5 đúng bằng ngưỡng -> không nổ; 3.4 -> nổ warning.
func TestEvaluateAlerts_FeedbackBien(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)
	stats := &statsdto.PeriodStats{}
	stats.Users.Mentors.AvailabilityRate = 50
	stats.Matching.SuccessRate = 90
	stats.Sessions.CompletionRate = 95

	stats.Feedback.AvgScore = 3.5
	assert.Empty(t, s.EvaluateAlerts(stats), "3.5 đúng ngưỡng, không nổ")

	stats.Feedback.AvgScore = 3.4
	alerts := s.EvaluateAlerts(stats)
	require.Len(t, alerts, 1)
	assert.Equal(t, CategoryFeedback, alerts[0].Category)
	assert.Equal(t, AlertWarning, alerts[0].Type)
}

// fakeDispatcher ghi lại từng call Notify, có thể trả lỗi.
type fakeDispatcher struct {
	calls int
	err   error
}

func (f *fakeDispatcher) Notify(ctx context.Context, targetRole, title, message, severity, category string) error {
	f.calls++
	return f.err
}

// Dispatcher lỗi không được ảnh hưởng danh sách cảnh báo trả về (log-and-continue).
func TestGetAlerts_DispatcherLoi_KhongAnhHuong(t *testing.T) {
	dispatcher := &fakeDispatcher{err: assert.AnError}
	s := NewStatsService(
		&fakeUsers{groups: []statssrc.RoleGroup{{Role: statssrc.RoleMentor, Total: 10, Active: 1}}},
		&fakePairs{}, &fakeMatching{}, &fakeSessions{}, &fakeMessages{}, newFakeSnapshots(),
		nil, DefaultAlertThresholds(), dispatcher)

	start, end, err := s.ResolveRange(PeriodDay, "", "")
	require.NoError(t, err)
	alerts, err := s.GetAlerts(context.Background(), start, end)
	require.NoError(t, err, "lỗi gửi cảnh báo không được lan ra response")
	assert.NotEmpty(t, alerts)
	assert.Equal(t, len(alerts), dispatcher.calls, "mỗi cảnh báo một call Notify")
}
