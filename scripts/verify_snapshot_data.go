// Script kiểm tra dữ liệu trong statistics_snapshots: đủ ngày không, có
// ngày bị trùng không, trường date có đúng đầu ngày theo timezone không.
// Chạy: go run scripts/verify_snapshot_data.go
// Cần: MONGODB_CONNECTION_URI, MONGODB_DBNAME (optional: STATS_TIMEZONE)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadEnv() {
	tryPaths := []string{".env", "config/env/development.env"}
	cwd, _ := os.Getwd()
	for _, p := range tryPaths {
		full := filepath.Join(cwd, p)
		if _, err := os.Stat(full); err == nil {
			_ = godotenv.Load(full)
			return
		}
		parent := filepath.Dir(cwd)
		if _, err := os.Stat(filepath.Join(parent, p)); err == nil {
			_ = godotenv.Load(filepath.Join(parent, p))
			return
		}
	}
}

func main() {
	loadEnv()
	uri := os.Getenv("MONGODB_CONNECTION_URI")
	dbName := os.Getenv("MONGODB_DBNAME")
	if uri == "" || dbName == "" {
		log.Fatal("Cần MONGODB_CONNECTION_URI và MONGODB_DBNAME")
	}

	tzName := os.Getenv("STATS_TIMEZONE")
	if tzName == "" {
		tzName = "Europe/Paris"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("Timezone %s không hợp lệ: %v", tzName, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Kết nối MongoDB lỗi: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Ping MongoDB lỗi: %v", err)
	}
	fmt.Println("✓ Đã kết nối MongoDB")
	fmt.Println()

	coll := client.Database(dbName).Collection("statistics_snapshots")

	total, _ := coll.CountDocuments(ctx, bson.M{})
	fmt.Printf("=== statistics_snapshots ===\n")
	fmt.Printf("Tổng số bản ghi: %d\n\n", total)
	if total == 0 {
		fmt.Println("Chưa có snapshot nào, không có gì để kiểm tra")
		return
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		log.Fatalf("Query snapshots lỗi: %v", err)
	}
	var snapshots []struct {
		Date       time.Time `bson:"date"`
		TotalUsers int64     `bson:"totalUsers"`
	}
	if err := cursor.All(ctx, &snapshots); err != nil {
		log.Fatalf("Decode snapshots lỗi: %v", err)
	}

	// 1. Kiểm tra date có đúng đầu ngày theo timezone không
	misaligned := 0
	for _, s := range snapshots {
		local := s.Date.In(loc)
		if local.Hour() != 0 || local.Minute() != 0 || local.Second() != 0 {
			misaligned++
			fmt.Printf("⚠️ Snapshot lệch đầu ngày: %s\n", local.Format(time.RFC3339))
		}
	}
	if misaligned == 0 {
		fmt.Printf("✓ Tất cả %d snapshot đều đúng đầu ngày (%s)\n", len(snapshots), tzName)
	}

	// 2. Kiểm tra ngày trùng
	seen := map[string]int{}
	for _, s := range snapshots {
		seen[s.Date.In(loc).Format("2006-01-02")]++
	}
	duplicates := 0
	for day, n := range seen {
		if n > 1 {
			duplicates++
			fmt.Printf("⚠️ Ngày %s có %d bản ghi (kỳ vọng 1)\n", day, n)
		}
	}
	if duplicates == 0 {
		fmt.Println("✓ Không có ngày nào bị trùng snapshot")
	}

	// 3. Kiểm tra ngày bị thiếu giữa snapshot đầu và cuối
	first := snapshots[0].Date.In(loc)
	last := snapshots[len(snapshots)-1].Date.In(loc)
	var missing []string
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if seen[day.Format("2006-01-02")] == 0 {
			missing = append(missing, day.Format("2006-01-02"))
		}
	}
	if len(missing) == 0 {
		fmt.Printf("✓ Liên tục từ %s đến %s, không thiếu ngày nào\n", first.Format("2006-01-02"), last.Format("2006-01-02"))
	} else {
		fmt.Printf("⚠️ Thiếu %d ngày (worker snapshot không chạy?):\n", len(missing))
		for _, day := range missing {
			fmt.Printf("  - %s\n", day)
		}
	}

	fmt.Println()
	fmt.Println("=== Hoàn tất kiểm tra ===")
}
