// Package database - Index cho các collection mà engine thống kê query.
package database

import (
	"context"
	"strings"

	"my_godfather/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateStatsIndexes tạo index phục vụ các query của engine thống kê.
// Gọi một lần lúc khởi động, index đã tồn tại thì bỏ qua.
func CreateStatsIndexes(ctx context.Context, db *mongo.Database) error {
	// statistics_snapshots: date unique — một bản ghi mỗi ngày, upsert-by-date
	snapshots := db.Collection(global.MongoDB_ColNames.StatisticsSnapshots)
	if _, err := snapshots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("snapshot_date_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// users: role — group theo role; createdAt — đếm user mới theo ngày + feed
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "role", Value: 1}},
		Options: options.Index().SetName("user_role"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("user_created_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// mentor_mentee_pairs: (menteeId, status) — set mentee đã ghép
	pairs := db.Collection(global.MongoDB_ColNames.Pairs)
	if _, err := pairs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "menteeId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("pair_mentee_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// sessions: date — mọi query theo range; createdAt — feed
	sessions := db.Collection(global.MongoDB_ColNames.Sessions)
	if _, err := sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("session_date"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("session_created_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: createdAt — đếm theo range + feed
	messages := db.Collection(global.MongoDB_ColNames.Messages)
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("message_created_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// matching_logs: createdAt — range + log mới nhất
	matchingLogs := db.Collection(global.MongoDB_ColNames.MatchingLogs)
	if _, err := matchingLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("matching_log_created_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery_queue: (status, priority) — worker delivery lấy item pending theo priority
	queue := db.Collection(global.MongoDB_ColNames.DeliveryQueue)
	if _, err := queue.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "priority", Value: 1},
		},
		Options: options.Index().SetName("delivery_queue_status_priority"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
