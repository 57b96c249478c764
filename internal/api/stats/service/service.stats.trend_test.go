// Package statssvc - test trend so với snapshot hôm qua và dashboard.
package statssvc

import (
	"context"
	"testing"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
	statsmodels "my_godfather/internal/api/stats/models"
	statssrc "my_godfather/internal/api/stats/source"
)

func TestComputeTrends_ChuaCoSnapshot_TatCaBangKhong(t *testing.T) {
	s := newTestService(
		&fakeUsers{groups: []statssrc.RoleGroup{{Role: statssrc.RoleMentor, Total: 5, Active: 5}}},
		nil, nil, nil, nil, nil)

	start, end, _ := s.ResolveRange(PeriodDay, "", "")
	stats, err := s.GetPeriodStats(context.Background(), start, end)
	if err != nil {
		t.Fatalf("GetPeriodStats lỗi: %v", err)
	}
	trends, err := s.ComputeTrends(context.Background(), stats)
	if err != nil {
		t.Fatalf("thiếu snapshot hôm qua không được là lỗi: %v", err)
	}
	if *trends != (statsdto.TrendStats{}) {
		t.Errorf("trends = %+v, muốn tất cả 0 khi chưa có baseline", trends)
	}
}

func TestComputeTrends_CoSnapshotHomQua(t *testing.T) {
	store := newFakeSnapshots()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	store.byDay[yesterday.Format("2006-01-02")] = &statsmodels.StatisticsSnapshot{
		TotalUsers:    10,
		ActiveMentors: 4,
		SessionsToday: 2,
		MessagesToday: 8,
	}
	s := newTestService(
		&fakeUsers{groups: []statssrc.RoleGroup{
			{Role: statssrc.RoleMentor, Total: 8, Active: 6},
			{Role: statssrc.RoleMentee, Total: 7, Active: 7},
		}},
		nil, nil,
		&fakeSessions{count: 3},
		&fakeMessages{count: 4},
		store)

	start, end, _ := s.ResolveRange(PeriodDay, "", "")
	stats, err := s.GetPeriodStats(context.Background(), start, end)
	if err != nil {
		t.Fatalf("GetPeriodStats lỗi: %v", err)
	}
	trends, err := s.ComputeTrends(context.Background(), stats)
	if err != nil {
		t.Fatalf("ComputeTrends lỗi: %v", err)
	}
	// 15 user hôm nay vs 10 hôm qua = +50%
	if trends.TotalUsers != 50 {
		t.Errorf("totalUsers trend = %v, muốn 50", trends.TotalUsers)
	}
	// 6 active mentor vs 4 = +50%
	if trends.ActiveMentors != 50 {
		t.Errorf("activeMentors trend = %v, muốn 50", trends.ActiveMentors)
	}
	// 3 session vs 2 = +50%
	if trends.SessionsToday != 50 {
		t.Errorf("sessionsToday trend = %v, muốn 50", trends.SessionsToday)
	}
	// 4 message vs 8 = -50%
	if trends.MessagesToday != -50 {
		t.Errorf("messagesToday trend = %v, muốn -50", trends.MessagesToday)
	}
	// Baseline feedback = 0 -> trend 0
	if trends.FeedbackAvg != 0 {
		t.Errorf("feedbackAvg trend = %v, muốn 0 (baseline 0)", trends.FeedbackAvg)
	}
}

func TestGetDashboard_DayDuBaPhan(t *testing.T) {
	s := newTestService(
		&fakeUsers{groups: []statssrc.RoleGroup{{Role: statssrc.RoleMentor, Total: 10, Active: 1}}},
		nil, nil, nil, nil, nil)

	start, end, _ := s.ResolveRange(PeriodDay, "", "")
	dash, err := s.GetDashboard(context.Background(), start, end)
	if err != nil {
		t.Fatalf("GetDashboard lỗi: %v", err)
	}
	if dash.Stats == nil {
		t.Fatal("dashboard thiếu stats")
	}
	if dash.Trends == nil {
		t.Fatal("dashboard thiếu trends (phải là 0, không phải nil, khi chưa có snapshot)")
	}
	if len(dash.Alerts) == 0 {
		t.Error("10 mentor chỉ 1 khả dụng (10%) phải có cảnh báo")
	}
	if len(dash.Stats.Alerts) != len(dash.Alerts) {
		t.Error("stats.alerts phải trùng danh sách alerts của dashboard")
	}
}
