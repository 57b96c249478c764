// Package statssvc - test job snapshot hàng ngày: idempotence, giá trị chốt.
package statssvc

import (
	"context"
	"reflect"
	"testing"
	"time"

	statssrc "my_godfather/internal/api/stats/source"
)

func TestSnapshotDailyStats_Idempotent(t *testing.T) {
	store := newFakeSnapshots()
	s := NewStatsService(
		&fakeUsers{groups: []statssrc.RoleGroup{
			{Role: statssrc.RoleMentor, Total: 8, Active: 4},
			{Role: statssrc.RoleMentee, Total: 12, Active: 12},
		}},
		&fakePairs{},
		&fakeMatching{scores: []float64{90, 70}, last: 90},
		&fakeSessions{groups: []statssrc.StatusGroup{{Status: statssrc.SessionCompleted, Count: 3, TotalDuration: 120}}},
		&fakeMessages{count: 5},
		store,
		time.UTC, DefaultAlertThresholds(), nil)

	ref := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	first, err := s.SnapshotDailyStats(context.Background(), ref)
	if err != nil {
		t.Fatalf("SnapshotDailyStats lần 1 lỗi: %v", err)
	}
	second, err := s.SnapshotDailyStats(context.Background(), ref)
	if err != nil {
		t.Fatalf("SnapshotDailyStats lần 2 lỗi: %v", err)
	}

	if len(store.byDay) != 1 {
		t.Errorf("số bản ghi = %d, muốn 1 (chạy lại cùng ngày không tạo trùng)", len(store.byDay))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("dữ liệu nguồn không đổi nhưng hai lần chốt khác nhau:\n%+v\n%+v", first, second)
	}
}

func TestSnapshotDailyStats_DateLaDauNgay(t *testing.T) {
	store := newFakeSnapshots()
	s := NewStatsService(&fakeUsers{}, &fakePairs{}, &fakeMatching{}, &fakeSessions{},
		&fakeMessages{}, store, time.UTC, DefaultAlertThresholds(), nil)

	ref := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	snap, err := s.SnapshotDailyStats(context.Background(), ref)
	if err != nil {
		t.Fatalf("SnapshotDailyStats lỗi: %v", err)
	}
	want := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !snap.Date.Equal(want) {
		t.Errorf("snapshot.Date = %v, muốn đầu ngày %v", snap.Date, want)
	}
	if store.byDay["2026-08-29"] == nil {
		t.Error("store không có bản ghi cho ngày 2026-08-29")
	}
}

// Fake đếm theo ngày: trả số đếm theo đầu ngày của range được truyền,
// để phân biệt được snapshot đang đếm ngày nào.
type dayCountSessions struct {
	fakeSessions
	byDay map[string]int64
}

func (f *dayCountSessions) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.byDay[start.Format("2006-01-02")], nil
}

type dayCountMessages struct {
	fakeMessages
	byDay map[string]int64
}

func (f *dayCountMessages) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.byDay[start.Format("2006-01-02")], nil
}

// Worker chạy lúc 00:10 chốt cho hôm qua: hai point count phải là số đếm
// của ngày tham chiếu, không phải của ngày đang chạy job.
func TestSnapshotDailyStats_PointCountTheoNgayThamChieu(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	yKey := yesterday.Format("2006-01-02")
	tKey := now.Format("2006-01-02")

	store := newFakeSnapshots()
	s := NewStatsService(
		&fakeUsers{}, &fakePairs{}, &fakeMatching{},
		&dayCountSessions{byDay: map[string]int64{yKey: 7, tKey: 99}},
		&dayCountMessages{byDay: map[string]int64{yKey: 3, tKey: 88}},
		store,
		time.UTC, DefaultAlertThresholds(), nil)

	snap, err := s.SnapshotDailyStats(context.Background(), yesterday)
	if err != nil {
		t.Fatalf("SnapshotDailyStats lỗi: %v", err)
	}
	if snap.SessionsToday != 7 {
		t.Errorf("sessionsToday = %d, muốn 7 (số phiên của ngày tham chiếu, không phải 99 của hôm nay)", snap.SessionsToday)
	}
	if snap.MessagesToday != 3 {
		t.Errorf("messagesToday = %d, muốn 3 (số tin nhắn của ngày tham chiếu, không phải 88 của hôm nay)", snap.MessagesToday)
	}

	// Read path vẫn đếm theo ngày hiện tại.
	stats, err := s.GetPeriodStats(context.Background(), s.startOfDay(now), s.endOfDay(now))
	if err != nil {
		t.Fatalf("GetPeriodStats lỗi: %v", err)
	}
	if stats.Sessions.Today != 99 {
		t.Errorf("read path sessions.today = %d, muốn 99 (hôm nay)", stats.Sessions.Today)
	}
	if stats.Messages.TotalToday != 88 {
		t.Errorf("read path messages.totalToday = %d, muốn 88 (hôm nay)", stats.Messages.TotalToday)
	}
}

func TestSnapshotDailyStats_ChotGiaTri(t *testing.T) {
	store := newFakeSnapshots()
	s := NewStatsService(
		&fakeUsers{groups: []statssrc.RoleGroup{
			{Role: statssrc.RoleMentor, Total: 10, Active: 3},
			{Role: statssrc.RoleMentee, Total: 20, Active: 20},
		}},
		&fakePairs{},
		&fakeMatching{scores: []float64{85, 85, 60, 70}},
		&fakeSessions{ratings: []float64{5, 3}},
		&fakeMessages{count: 9},
		store,
		time.UTC, DefaultAlertThresholds(), nil)

	snap, err := s.SnapshotDailyStats(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("SnapshotDailyStats lỗi: %v", err)
	}
	if snap.TotalUsers != 30 {
		t.Errorf("totalUsers = %d, muốn 30", snap.TotalUsers)
	}
	if snap.ActiveMentors != 3 {
		t.Errorf("activeMentors = %d, muốn 3", snap.ActiveMentors)
	}
	if snap.MatchingSuccessRate != 50 {
		t.Errorf("matchingSuccessRate = %d, muốn 50 (2/4 score >= 80)", snap.MatchingSuccessRate)
	}
	if snap.FeedbackAvgScore != 4.0 {
		t.Errorf("feedbackAvgScore = %v, muốn 4.0", snap.FeedbackAvgScore)
	}
	if snap.MessagesToday != 9 {
		t.Errorf("messagesToday = %d, muốn 9", snap.MessagesToday)
	}
}
