// Package statssvc - fake source dùng chung cho test + test các helper làm tròn.
package statssvc

import (
	"context"
	"testing"
	"time"

	statsmodels "my_godfather/internal/api/stats/models"
	statssrc "my_godfather/internal/api/stats/source"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============================================
// Fake sources
// ============================================

type fakeUsers struct {
	groups    []statssrc.RoleGroup
	menteeIDs []primitive.ObjectID
	created   int64
	recent    []statssrc.ActivityRecord
	err       error
}

func (f *fakeUsers) RoleGroups(ctx context.Context) ([]statssrc.RoleGroup, error) {
	return f.groups, f.err
}
func (f *fakeUsers) MenteeIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	return f.menteeIDs, f.err
}
func (f *fakeUsers) CountCreatedInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.created, f.err
}
func (f *fakeUsers) RecentN(ctx context.Context, n int64) ([]statssrc.ActivityRecord, error) {
	return f.recent, f.err
}

type fakePairs struct {
	paired []primitive.ObjectID
	err    error
}

func (f *fakePairs) PairedMenteeIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	return f.paired, f.err
}

type fakeMatching struct {
	scores []float64
	last   float64
	count  int64
	recent []statssrc.ActivityRecord
	err    error
}

func (f *fakeMatching) ScoresInRange(ctx context.Context, start, end time.Time) ([]float64, error) {
	return f.scores, f.err
}
func (f *fakeMatching) LatestFirstScore(ctx context.Context) (float64, error) {
	return f.last, f.err
}
func (f *fakeMatching) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.count, f.err
}
func (f *fakeMatching) RecentN(ctx context.Context, n int64) ([]statssrc.ActivityRecord, error) {
	return f.recent, f.err
}

type fakeSessions struct {
	groups  []statssrc.StatusGroup
	count   int64
	ratings []float64
	recent  []statssrc.ActivityRecord
	err     error
}

func (f *fakeSessions) StatusGroups(ctx context.Context, start, end time.Time) ([]statssrc.StatusGroup, error) {
	return f.groups, f.err
}
func (f *fakeSessions) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.count, f.err
}
func (f *fakeSessions) FeedbackInRange(ctx context.Context, start, end time.Time) ([]float64, error) {
	return f.ratings, f.err
}
func (f *fakeSessions) RecentN(ctx context.Context, n int64) ([]statssrc.ActivityRecord, error) {
	return f.recent, f.err
}

type fakeMessages struct {
	count  int64
	recent []statssrc.ActivityRecord
	err    error
}

func (f *fakeMessages) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.count, f.err
}
func (f *fakeMessages) RecentN(ctx context.Context, n int64) ([]statssrc.ActivityRecord, error) {
	return f.recent, f.err
}

// fakeSnapshots lưu snapshot trong map theo ngày, đếm số lần upsert.
type fakeSnapshots struct {
	byDay   map[string]*statsmodels.StatisticsSnapshot
	upserts int
	err     error
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{byDay: make(map[string]*statsmodels.StatisticsSnapshot)}
}

func (f *fakeSnapshots) Upsert(ctx context.Context, date time.Time, snap *statsmodels.StatisticsSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	copied := *snap
	f.byDay[date.Format("2006-01-02")] = &copied
	return nil
}

func (f *fakeSnapshots) FindByDate(ctx context.Context, date time.Time) (*statsmodels.StatisticsSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDay[date.Format("2006-01-02")], nil
}

// newTestService tạo StatsService với fake source và ngưỡng mặc định, timezone UTC.
func newTestService(users *fakeUsers, pairs *fakePairs, matching *fakeMatching,
	sessions *fakeSessions, messages *fakeMessages, snapshots *fakeSnapshots) *StatsService {
	if users == nil {
		users = &fakeUsers{}
	}
	if pairs == nil {
		pairs = &fakePairs{}
	}
	if matching == nil {
		matching = &fakeMatching{}
	}
	if sessions == nil {
		sessions = &fakeSessions{}
	}
	if messages == nil {
		messages = &fakeMessages{}
	}
	if snapshots == nil {
		snapshots = newFakeSnapshots()
	}
	return NewStatsService(users, pairs, matching, sessions, messages, snapshots,
		time.UTC, DefaultAlertThresholds(), nil)
}

// ============================================
// Helper làm tròn
// ============================================

func TestRate_MauSoKhong(t *testing.T) {
	if got := rate(5, 0); got != 0 {
		t.Errorf("rate(5, 0) = %d, muốn 0", got)
	}
	if got := rate(0, 0); got != 0 {
		t.Errorf("rate(0, 0) = %d, muốn 0", got)
	}
}

func TestRate_TrongKhoang(t *testing.T) {
	cases := []struct {
		num, den int64
		want     int
	}{
		{3, 10, 30},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{0, 7, 0},
	}
	for _, c := range cases {
		got := rate(c.num, c.den)
		if got != c.want {
			t.Errorf("rate(%d, %d) = %d, muốn %d", c.num, c.den, got, c.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("rate(%d, %d) = %d ngoài [0, 100]", c.num, c.den, got)
		}
	}
}

func TestTrend(t *testing.T) {
	if got := trend(42, 0); got != 0 {
		t.Errorf("trend(42, 0) = %v, muốn 0 (không có baseline)", got)
	}
	if got := trend(7, 7); got != 0 {
		t.Errorf("trend(7, 7) = %v, muốn 0", got)
	}
	if got := trend(150, 100); got != 50 {
		t.Errorf("trend(150, 100) = %v, muốn 50", got)
	}
	if got := trend(100, 150); got != -33.3 {
		t.Errorf("trend(100, 150) = %v, muốn -33.3", got)
	}
}

func TestRound1(t *testing.T) {
	if got := round1(3.14159); got != 3.1 {
		t.Errorf("round1(3.14159) = %v, muốn 3.1", got)
	}
	if got := round1(2.46); got != 2.5 {
		t.Errorf("round1(2.46) = %v, muốn 2.5", got)
	}
}
