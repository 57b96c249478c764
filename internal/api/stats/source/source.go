// Package statssrc định nghĩa query interface cho từng domain dữ liệu nguồn
// (users, pairs, sessions, messages, matching logs) và store cho snapshot.
// Logic tổng hợp (ngưỡng, làm tròn, bucket) làm việc qua các interface này
// nên unit-test được mà không cần datastore thật.
package statssrc

import (
	"context"
	"time"

	statsmodels "my_godfather/internal/api/stats/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role constants cho user records
const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

// Session status constants
const (
	SessionScheduled = "scheduled"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Pair status constants
const (
	PairActive    = "active"
	PairCompleted = "completed"
)

// RoleGroup kết quả group user theo role.
// Active = số user có availability = true (chỉ có nghĩa với mentor;
// các role khác active = total).
type RoleGroup struct {
	Role   string
	Total  int64
	Active int64
}

// StatusGroup kết quả group session theo status.
// TotalDuration = tổng duration (phút) của các session trong nhóm.
type StatusGroup struct {
	Status        string
	Count         int64
	TotalDuration int64
}

// ActivityRecord bản ghi thô cho feed hoạt động gần đây.
type ActivityRecord struct {
	ID        string
	Timestamp time.Time
	Summary   string
	Warning   bool // true khi bản ghi đáng chú ý (vd: session bị hủy)
}

// UserSource query interface cho collection users.
type UserSource interface {
	// RoleGroups group toàn bộ user theo role, đếm total và active theo availability.
	RoleGroups(ctx context.Context) ([]RoleGroup, error)
	// MenteeIDs trả về id của tất cả mentee.
	MenteeIDs(ctx context.Context) ([]primitive.ObjectID, error)
	// CountCreatedInRange đếm user tạo trong [start, end].
	CountCreatedInRange(ctx context.Context, start, end time.Time) (int64, error)
	// RecentN trả về tối đa n user mới nhất.
	RecentN(ctx context.Context, n int64) ([]ActivityRecord, error)
}

// PairSource query interface cho collection mentor_mentee_pairs.
type PairSource interface {
	// PairedMenteeIDs trả về id mentee có pair ở trạng thái active hoặc completed.
	PairedMenteeIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// MatchingSource query interface cho matching logs (append-only, suggestions nhúng).
type MatchingSource interface {
	// ScoresInRange flatten toàn bộ suggestion của các log tạo trong [start, end],
	// trả về danh sách compatibilityScore.
	ScoresInRange(ctx context.Context, start, end time.Time) ([]float64, error)
	// LatestFirstScore trả về score của suggestion đầu tiên trong log mới nhất.
	// Trả về 0 khi chưa có log nào (không phải lỗi).
	LatestFirstScore(ctx context.Context) (float64, error)
	// CountInRange đếm số log tạo trong [start, end].
	CountInRange(ctx context.Context, start, end time.Time) (int64, error)
	// RecentN trả về tối đa n log mới nhất.
	RecentN(ctx context.Context, n int64) ([]ActivityRecord, error)
}

// SessionSource query interface cho collection sessions (feedback nhúng).
type SessionSource interface {
	// StatusGroups group session trong [start, end] theo status.
	StatusGroups(ctx context.Context, start, end time.Time) ([]StatusGroup, error)
	// CountInRange đếm session có lịch trong [start, end].
	CountInRange(ctx context.Context, start, end time.Time) (int64, error)
	// FeedbackInRange flatten các feedback rating của session trong [start, end].
	FeedbackInRange(ctx context.Context, start, end time.Time) ([]float64, error)
	// RecentN trả về tối đa n session mới nhất.
	RecentN(ctx context.Context, n int64) ([]ActivityRecord, error)
}

// MessageSource query interface cho collection messages.
type MessageSource interface {
	// CountInRange đếm message tạo trong [start, end].
	CountInRange(ctx context.Context, start, end time.Time) (int64, error)
	// RecentN trả về tối đa n message mới nhất.
	RecentN(ctx context.Context, n int64) ([]ActivityRecord, error)
}

// SnapshotStore store cho statistics_snapshots: upsert theo ngày, đọc theo ngày.
type SnapshotStore interface {
	// Upsert tạo (hoặc thay thế idempotent) bản ghi cho ngày chứa date.
	Upsert(ctx context.Context, date time.Time, snap *statsmodels.StatisticsSnapshot) error
	// FindByDate trả về bản ghi mới nhất có date trong ngày chứa date, nil khi không có.
	FindByDate(ctx context.Context, date time.Time) (*statsmodels.StatisticsSnapshot, error)
}
