// File: service.stats.distribution.go - histogram điểm tương thích matching.
package statssvc

import (
	"context"
	"fmt"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
)

// OutOfRangeBucket nhãn bucket cho score ngoài [0, 100].
const OutOfRangeBucket = "OutOfRange"

// defaultBucketBounds biên bucket mặc định: 0..100 bước 10.
func defaultBucketBounds() []float64 {
	return []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
}

// BucketizeScores chia danh sách score vào các bucket [bounds[i], bounds[i+1])
// (bucket cuối đóng hai đầu để 100 rơi vào 90-100). Score ngoài [min, max]
// vào bucket OutOfRange thay vì bị bỏ rơi. Mỗi score rơi vào đúng một bucket.
func BucketizeScores(scores []float64, bounds []float64) []statsdto.DistributionBucket {
	if len(bounds) < 2 {
		bounds = defaultBucketBounds()
	}
	counts := make([]int64, len(bounds)-1)
	var outOfRange int64
	last := len(bounds) - 2
	for _, sc := range scores {
		if sc < bounds[0] || sc > bounds[len(bounds)-1] {
			outOfRange++
			continue
		}
		for i := 0; i < len(bounds)-1; i++ {
			if sc < bounds[i+1] || i == last {
				counts[i]++
				break
			}
		}
	}

	out := make([]statsdto.DistributionBucket, 0, len(counts)+1)
	for i, c := range counts {
		out = append(out, statsdto.DistributionBucket{
			Range: fmt.Sprintf("%g-%g", bounds[i], bounds[i+1]),
			Count: c,
		})
	}
	out = append(out, statsdto.DistributionBucket{Range: OutOfRangeBucket, Count: outOfRange})
	return out
}

// GetMatchingDistribution flatten toàn bộ gợi ý matching trong [start, end]
// và trả về histogram điểm theo bucket mặc định.
func (s *StatsService) GetMatchingDistribution(ctx context.Context, start, end time.Time) ([]statsdto.DistributionBucket, error) {
	scores, err := s.matching.ScoresInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return BucketizeScores(scores, defaultBucketBounds()), nil
}
