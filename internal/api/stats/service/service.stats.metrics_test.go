// Package statssvc - test 4 aggregator và composer fail-closed.
package statssvc

import (
	"context"
	"errors"
	"testing"
	"time"

	statssrc "my_godfather/internal/api/stats/source"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserMetrics_WaitingLaHieuTapHop(t *testing.T) {
	m1, m2, m3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	users := &fakeUsers{
		groups: []statssrc.RoleGroup{
			{Role: statssrc.RoleMentor, Total: 4, Active: 2},
			{Role: statssrc.RoleMentee, Total: 3, Active: 3},
		},
		menteeIDs: []primitive.ObjectID{m1, m2, m3},
	}
	pairs := &fakePairs{paired: []primitive.ObjectID{m1}}
	s := newTestService(users, pairs, nil, nil, nil, nil)

	got, err := s.userMetrics(context.Background())
	if err != nil {
		t.Fatalf("userMetrics lỗi: %v", err)
	}
	if got.Mentors.Total != 4 || got.Mentors.Active != 2 {
		t.Errorf("mentors = %+v, muốn total 4 active 2", got.Mentors)
	}
	if got.Mentors.AvailabilityRate != 50 {
		t.Errorf("availability_rate = %d, muốn 50", got.Mentors.AvailabilityRate)
	}
	if got.Mentees.Total != 3 {
		t.Errorf("mentees.total = %d, muốn 3", got.Mentees.Total)
	}
	if got.Mentees.Waiting != 2 {
		t.Errorf("mentees.waiting = %d, muốn 2 (3 mentee - 1 đã ghép)", got.Mentees.Waiting)
	}
}

func TestMatchingMetrics_NguongThanhCong(t *testing.T) {
	matching := &fakeMatching{scores: []float64{79.9, 80, 85, 60}, last: 85}
	s := newTestService(nil, nil, matching, nil, nil, nil)

	got, err := s.matchingMetrics(context.Background(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("matchingMetrics lỗi: %v", err)
	}
	if got.Total != 4 {
		t.Errorf("total = %d, muốn 4", got.Total)
	}
	if got.Successful != 2 {
		t.Errorf("successful = %d, muốn 2 (chỉ score >= 80)", got.Successful)
	}
	if got.SuccessRate != 50 {
		t.Errorf("success_rate = %d, muốn 50", got.SuccessRate)
	}
	// (79.9 + 80 + 85 + 60) / 4 = 76.225 -> 76.2
	if got.AvgScore != 76.2 {
		t.Errorf("avg_score = %v, muốn 76.2", got.AvgScore)
	}
	if got.LastScore != 85 {
		t.Errorf("last_score = %v, muốn 85", got.LastScore)
	}
}

func TestSessionMetrics_AvgDurationChiTinhCompleted(t *testing.T) {
	sessions := &fakeSessions{
		groups: []statssrc.StatusGroup{
			{Status: statssrc.SessionCompleted, Count: 2, TotalDuration: 90},
			{Status: statssrc.SessionScheduled, Count: 1, TotalDuration: 60},
			{Status: statssrc.SessionCancelled, Count: 1},
		},
	}
	s := newTestService(nil, nil, nil, sessions, nil, nil)

	got, err := s.sessionMetrics(context.Background(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("sessionMetrics lỗi: %v", err)
	}
	if got.Total != 4 || got.Completed != 2 {
		t.Errorf("total/completed = %d/%d, muốn 4/2", got.Total, got.Completed)
	}
	if got.CompletionRate != 50 {
		t.Errorf("completion_rate = %d, muốn 50", got.CompletionRate)
	}
	if got.AvgDuration != 45 {
		t.Errorf("avg_duration = %d, muốn 45 (90 phút / 2 phiên completed)", got.AvgDuration)
	}
}

func TestFeedbackMetrics_SatisfactionTuRating4(t *testing.T) {
	sessions := &fakeSessions{ratings: []float64{5, 4, 3, 2}}
	s := newTestService(nil, nil, nil, sessions, nil, nil)

	got, err := s.feedbackMetrics(context.Background(), time.Now(), time.Now())
	if err != nil {
		t.Fatalf("feedbackMetrics lỗi: %v", err)
	}
	if got.Total != 4 {
		t.Errorf("total = %d, muốn 4", got.Total)
	}
	if got.AvgScore != 3.5 {
		t.Errorf("avg_score = %v, muốn 3.5", got.AvgScore)
	}
	if got.SatisfactionRate != 50 {
		t.Errorf("satisfaction_rate = %d, muốn 50 (2/4 rating >= 4)", got.SatisfactionRate)
	}
}

func TestGetPeriodStats_MotNguonLoi_ToanBoLoi(t *testing.T) {
	srcErr := errors.New("nguồn sập")
	sessions := &fakeSessions{err: srcErr}
	s := newTestService(nil, nil, nil, sessions, nil, nil)

	start, end, _ := s.ResolveRange(PeriodDay, "", "")
	stats, err := s.GetPeriodStats(context.Background(), start, end)
	if err == nil {
		t.Fatal("một nguồn lỗi phải làm cả composite lỗi (fail-closed)")
	}
	if !errors.Is(err, srcErr) {
		t.Errorf("lỗi trả về %v, muốn wrap lỗi nguồn", err)
	}
	if stats != nil {
		t.Error("không bao giờ trả về PeriodStats thiếu domain")
	}
}

func TestGetPeriodStats_GopDuCacDomain(t *testing.T) {
	s := newTestService(
		&fakeUsers{groups: []statssrc.RoleGroup{{Role: statssrc.RoleMentor, Total: 5, Active: 5}}},
		&fakePairs{},
		&fakeMatching{scores: []float64{90}, last: 90},
		&fakeSessions{count: 2, groups: []statssrc.StatusGroup{{Status: statssrc.SessionCompleted, Count: 1, TotalDuration: 30}}},
		&fakeMessages{count: 7},
		nil,
	)

	start, end, _ := s.ResolveRange(PeriodDay, "", "")
	stats, err := s.GetPeriodStats(context.Background(), start, end)
	if err != nil {
		t.Fatalf("GetPeriodStats lỗi: %v", err)
	}
	if stats.Users.Mentors.Total != 5 {
		t.Errorf("users.mentors.total = %d, muốn 5", stats.Users.Mentors.Total)
	}
	if stats.Matching.Total != 1 || stats.Matching.SuccessRate != 100 {
		t.Errorf("matching = %+v, muốn total 1 success_rate 100", stats.Matching)
	}
	if stats.Sessions.Today != 2 {
		t.Errorf("sessions.today = %d, muốn 2", stats.Sessions.Today)
	}
	if stats.Messages.TotalToday != 7 {
		t.Errorf("messages.totalToday = %d, muốn 7", stats.Messages.TotalToday)
	}
}
