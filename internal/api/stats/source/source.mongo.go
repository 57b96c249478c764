package statssrc

import (
	"context"
	"fmt"
	"time"

	statsmodels "my_godfather/internal/api/stats/models"
	"my_godfather/internal/common"
	"my_godfather/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// getCollection lấy collection từ registry, lỗi thống nhất khi chưa đăng ký.
func getCollection(name string) (*mongo.Collection, error) {
	coll, ok := global.RegistryCollections.Get(name)
	if !ok {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", name, common.ErrNotFound)
	}
	return coll, nil
}

// ============================================
// Users
// ============================================

// MongoUserSource đọc collection users.
type MongoUserSource struct{}

// NewMongoUserSource tạo MongoUserSource.
func NewMongoUserSource() *MongoUserSource {
	return &MongoUserSource{}
}

// RoleGroups group user theo role. Active đếm qua $cond trên availability
// nên chỉ cần một lượt aggregate cho toàn bộ role.
func (s *MongoUserSource) RoleGroups(ctx context.Context) ([]RoleGroup, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$role",
			"total": bson.M{"$sum": 1},
			"active": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$availability", true}}, 1, 0},
			}},
		}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []RoleGroup
	for cursor.Next(ctx) {
		var doc struct {
			ID     string `bson:"_id"`
			Total  int64  `bson:"total"`
			Active int64  `bson:"active"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, RoleGroup{Role: doc.ID, Total: doc.Total, Active: doc.Active})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []RoleGroup{}
	}
	return result, nil
}

// MenteeIDs trả về _id của tất cả user role mentee.
func (s *MongoUserSource) MenteeIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"role": RoleMentee},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	return ids, nil
}

// CountCreatedInRange đếm user tạo trong [start, end].
func (s *MongoUserSource) CountCreatedInRange(ctx context.Context, start, end time.Time) (int64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return 0, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// RecentN trả về tối đa n user mới nhất (sort createdAt desc).
func (s *MongoUserSource) RecentN(ctx context.Context, n int64) ([]ActivityRecord, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(n).
		SetProjection(bson.M{"firstName": 1, "lastName": 1, "role": 1, "createdAt": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []ActivityRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID `bson:"_id"`
			FirstName string             `bson:"firstName"`
			LastName  string             `bson:"lastName"`
			Role      string             `bson:"role"`
			CreatedAt time.Time          `bson:"createdAt"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, ActivityRecord{
			ID:        doc.ID.Hex(),
			Timestamp: doc.CreatedAt,
			Summary:   fmt.Sprintf("Người dùng mới: %s %s (%s)", doc.FirstName, doc.LastName, doc.Role),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []ActivityRecord{}
	}
	return result, nil
}

// ============================================
// Pairs
// ============================================

// MongoPairSource đọc collection mentor_mentee_pairs.
type MongoPairSource struct{}

// NewMongoPairSource tạo MongoPairSource.
func NewMongoPairSource() *MongoPairSource {
	return &MongoPairSource{}
}

// PairedMenteeIDs trả về menteeId distinct của các pair active/completed.
func (s *MongoPairSource) PairedMenteeIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Pairs)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"status": bson.M{"$in": bson.A{PairActive, PairCompleted}}}
	raw, err := coll.Distinct(ctx, "menteeId", filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ============================================
// Matching logs
// ============================================

// MongoMatchingSource đọc matching logs (mỗi log một lần chạy thuật toán,
// suggestions nhúng dạng mảng).
type MongoMatchingSource struct{}

// NewMongoMatchingSource tạo MongoMatchingSource.
func NewMongoMatchingSource() *MongoMatchingSource {
	return &MongoMatchingSource{}
}

// ScoresInRange unwind suggestions của các log trong [start, end],
// trả về danh sách compatibilityScore phẳng.
func (s *MongoMatchingSource) ScoresInRange(ctx context.Context, start, end time.Time) ([]float64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.MatchingLogs)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}},
		{"$unwind": "$suggestions"},
		{"$project": bson.M{"score": "$suggestions.compatibilityScore"}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var scores []float64
	for cursor.Next(ctx) {
		var doc struct {
			Score float64 `bson:"score"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		scores = append(scores, doc.Score)
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if scores == nil {
		scores = []float64{}
	}
	return scores, nil
}

// LatestFirstScore trả về score suggestion đầu tiên của log mới nhất, 0 khi chưa có log.
func (s *MongoMatchingSource) LatestFirstScore(ctx context.Context) (float64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.MatchingLogs)
	if err != nil {
		return 0, err
	}

	opts := options.FindOne().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"suggestions": bson.M{"$slice": 1}})
	var doc struct {
		Suggestions []struct {
			CompatibilityScore float64 `bson:"compatibilityScore"`
		} `bson:"suggestions"`
	}
	err = coll.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	if len(doc.Suggestions) == 0 {
		return 0, nil
	}
	return doc.Suggestions[0].CompatibilityScore, nil
}

// CountInRange đếm số log tạo trong [start, end].
func (s *MongoMatchingSource) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.MatchingLogs)
	if err != nil {
		return 0, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// RecentN trả về tối đa n log matching mới nhất.
func (s *MongoMatchingSource) RecentN(ctx context.Context, n int64) ([]ActivityRecord, error) {
	coll, err := getCollection(global.MongoDB_ColNames.MatchingLogs)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(n).
		SetProjection(bson.M{"createdAt": 1, "suggestions": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []ActivityRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID          primitive.ObjectID `bson:"_id"`
			CreatedAt   time.Time          `bson:"createdAt"`
			Suggestions []struct {
				CompatibilityScore float64 `bson:"compatibilityScore"`
			} `bson:"suggestions"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		best := float64(0)
		if len(doc.Suggestions) > 0 {
			best = doc.Suggestions[0].CompatibilityScore
		}
		result = append(result, ActivityRecord{
			ID:        doc.ID.Hex(),
			Timestamp: doc.CreatedAt,
			Summary:   fmt.Sprintf("Chạy matching: %d gợi ý, score cao nhất %.0f", len(doc.Suggestions), best),
			Warning:   best < 80,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []ActivityRecord{}
	}
	return result, nil
}

// ============================================
// Sessions
// ============================================

// MongoSessionSource đọc collection sessions (feedback nhúng).
type MongoSessionSource struct{}

// NewMongoSessionSource tạo MongoSessionSource.
func NewMongoSessionSource() *MongoSessionSource {
	return &MongoSessionSource{}
}

// StatusGroups group session trong [start, end] theo status,
// gom luôn tổng duration để tính trung bình phía service.
func (s *MongoSessionSource) StatusGroups(ctx context.Context, start, end time.Time) ([]StatusGroup, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Sessions)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"date": bson.M{"$gte": start, "$lte": end}}},
		{"$group": bson.M{
			"_id":           "$status",
			"count":         bson.M{"$sum": 1},
			"totalDuration": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$duration", 0}}},
		}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []StatusGroup
	for cursor.Next(ctx) {
		var doc struct {
			ID            string `bson:"_id"`
			Count         int64  `bson:"count"`
			TotalDuration int64  `bson:"totalDuration"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, StatusGroup{Status: doc.ID, Count: doc.Count, TotalDuration: doc.TotalDuration})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []StatusGroup{}
	}
	return result, nil
}

// CountInRange đếm session có lịch trong [start, end].
func (s *MongoSessionSource) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Sessions)
	if err != nil {
		return 0, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// FeedbackInRange unwind feedback của session trong [start, end], trả về rating phẳng.
func (s *MongoSessionSource) FeedbackInRange(ctx context.Context, start, end time.Time) ([]float64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Sessions)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"date": bson.M{"$gte": start, "$lte": end}}},
		{"$unwind": "$feedback"},
		{"$project": bson.M{"rating": "$feedback.rating"}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var ratings []float64
	for cursor.Next(ctx) {
		var doc struct {
			Rating float64 `bson:"rating"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		ratings = append(ratings, doc.Rating)
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if ratings == nil {
		ratings = []float64{}
	}
	return ratings, nil
}

// RecentN trả về tối đa n session mới nhất theo createdAt.
func (s *MongoSessionSource) RecentN(ctx context.Context, n int64) ([]ActivityRecord, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Sessions)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(n).
		SetProjection(bson.M{"status": 1, "date": 1, "createdAt": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []ActivityRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID `bson:"_id"`
			Status    string             `bson:"status"`
			Date      time.Time          `bson:"date"`
			CreatedAt time.Time          `bson:"createdAt"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, ActivityRecord{
			ID:        doc.ID.Hex(),
			Timestamp: doc.CreatedAt,
			Summary:   fmt.Sprintf("Phiên mentoring %s (lịch %s)", doc.Status, doc.Date.Format("2006-01-02")),
			Warning:   doc.Status == SessionCancelled,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []ActivityRecord{}
	}
	return result, nil
}

// ============================================
// Messages
// ============================================

// MongoMessageSource đọc collection messages.
type MongoMessageSource struct{}

// NewMongoMessageSource tạo MongoMessageSource.
func NewMongoMessageSource() *MongoMessageSource {
	return &MongoMessageSource{}
}

// CountInRange đếm message tạo trong [start, end].
func (s *MongoMessageSource) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Messages)
	if err != nil {
		return 0, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// RecentN trả về tối đa n message mới nhất. Không trả nội dung message,
// feed chỉ cần sự kiện.
func (s *MongoMessageSource) RecentN(ctx context.Context, n int64) ([]ActivityRecord, error) {
	coll, err := getCollection(global.MongoDB_ColNames.Messages)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(n).
		SetProjection(bson.M{"createdAt": 1})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var result []ActivityRecord
	for cursor.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID `bson:"_id"`
			CreatedAt time.Time          `bson:"createdAt"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, ActivityRecord{
			ID:        doc.ID.Hex(),
			Timestamp: doc.CreatedAt,
			Summary:   "Tin nhắn mới giữa mentor và mentee",
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if result == nil {
		result = []ActivityRecord{}
	}
	return result, nil
}

// ============================================
// Snapshots
// ============================================

// MongoSnapshotStore lưu statistics_snapshots, key nghiệp vụ là ngày.
type MongoSnapshotStore struct{}

// NewMongoSnapshotStore tạo MongoSnapshotStore.
func NewMongoSnapshotStore() *MongoSnapshotStore {
	return &MongoSnapshotStore{}
}

// dayWindow trả về [00:00:00, 24:00:00) của ngày chứa t (giữ nguyên location của t).
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// Upsert thay thế bản ghi của ngày chứa date (ReplaceOne + upsert).
// Chạy lại trong cùng ngày không tạo bản ghi trùng.
func (s *MongoSnapshotStore) Upsert(ctx context.Context, date time.Time, snap *statsmodels.StatisticsSnapshot) error {
	coll, err := getCollection(global.MongoDB_ColNames.StatisticsSnapshots)
	if err != nil {
		return err
	}

	dayStart, dayEnd := dayWindow(date)
	snap.Date = dayStart
	now := time.Now().Unix()
	if snap.CreatedAt == 0 {
		snap.CreatedAt = now
	}
	snap.UpdatedAt = now

	// Không set _id trong replacement: ReplaceOne giữ _id cũ khi bản ghi đã tồn tại.
	snap.ID = primitive.NilObjectID

	filter := bson.M{"date": bson.M{"$gte": dayStart, "$lt": dayEnd}}
	_, err = coll.ReplaceOne(ctx, filter, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// FindByDate trả về bản ghi của ngày chứa date, nil khi chưa có snapshot.
func (s *MongoSnapshotStore) FindByDate(ctx context.Context, date time.Time) (*statsmodels.StatisticsSnapshot, error) {
	coll, err := getCollection(global.MongoDB_ColNames.StatisticsSnapshots)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayWindow(date)
	filter := bson.M{"date": bson.M{"$gte": dayStart, "$lt": dayEnd}}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var snap statsmodels.StatisticsSnapshot
	err = coll.FindOne(ctx, filter, opts).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return &snap, nil
}
