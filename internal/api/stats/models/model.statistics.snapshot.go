// Package models chứa các model thuộc domain Statistics.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatisticsSnapshot lưu thống kê đã chốt theo ngày (statistics_snapshots).
// Mỗi ngày đúng một bản ghi, key duy nhất là Date (đầu ngày theo timezone tham chiếu).
// Job snapshot tạo bản ghi cho "hôm qua"; upsert-by-date để chịu được chạy lại.
// Không bao giờ sửa hay xóa sau khi tạo.
type StatisticsSnapshot struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // MongoDB _id
	Date time.Time          `json:"date" bson:"date" index:"unique:1"` // Đầu ngày (00:00:00) của ngày được chốt

	// Users
	TotalUsers     int64 `json:"totalUsers" bson:"totalUsers"`
	Mentors        int64 `json:"mentors" bson:"mentors"`
	ActiveMentors  int64 `json:"activeMentors" bson:"activeMentors"`
	Mentees        int64 `json:"mentees" bson:"mentees"`
	WaitingMentees int64 `json:"waitingMentees" bson:"waitingMentees"`

	// Matching
	MatchingTotal       int64   `json:"matchingTotal" bson:"matchingTotal"`
	MatchingSuccessful  int64   `json:"matchingSuccessful" bson:"matchingSuccessful"`
	MatchingSuccessRate int     `json:"matchingSuccessRate" bson:"matchingSuccessRate"`
	MatchingAvgScore    float64 `json:"matchingAvgScore" bson:"matchingAvgScore"`

	// Sessions
	SessionsTotal         int64 `json:"sessionsTotal" bson:"sessionsTotal"`
	SessionsCompleted     int64 `json:"sessionsCompleted" bson:"sessionsCompleted"`
	SessionCompletionRate int   `json:"sessionCompletionRate" bson:"sessionCompletionRate"`
	SessionsToday         int64 `json:"sessionsToday" bson:"sessionsToday"`
	AvgSessionDuration    int64 `json:"avgSessionDuration" bson:"avgSessionDuration"`

	// Messages
	MessagesToday int64 `json:"messagesToday" bson:"messagesToday"`

	// Feedback
	FeedbackTotal    int64   `json:"feedbackTotal" bson:"feedbackTotal"`
	FeedbackAvgScore float64 `json:"feedbackAvgScore" bson:"feedbackAvgScore"`
	SatisfactionRate int     `json:"satisfactionRate" bson:"satisfactionRate"`

	// Metadata bag cho các trường forward-compatible
	Metadata map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Unix seconds
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Unix seconds
}
