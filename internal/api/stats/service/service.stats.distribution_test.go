// Package statssvc - test bucketizer phân phối điểm matching.
package statssvc

import (
	"testing"
)

func TestBucketizeScores_KichBan(t *testing.T) {
	scores := []float64{5, 15, 25, 95, 105}
	buckets := BucketizeScores(scores, nil)

	want := map[string]int64{
		"0-10": 1, "10-20": 1, "20-30": 1, "90-100": 1, OutOfRangeBucket: 1,
	}
	for _, b := range buckets {
		if w, ok := want[b.Range]; ok {
			if b.Count != w {
				t.Errorf("bucket %s = %d, muốn %d", b.Range, b.Count, w)
			}
			delete(want, b.Range)
		} else if b.Count != 0 {
			t.Errorf("bucket %s = %d, muốn 0", b.Range, b.Count)
		}
	}
	if len(want) != 0 {
		t.Errorf("thiếu bucket: %v", want)
	}
}

// Mỗi score rơi vào đúng một bucket: tổng count các bucket = số score đầu vào.
func TestBucketizeScores_PhanHoachDayDu(t *testing.T) {
	scores := []float64{0, 10, 50, 99.9, 100, -1, 100.1, 33}
	buckets := BucketizeScores(scores, nil)

	var total, outOfRange int64
	for _, b := range buckets {
		total += b.Count
		if b.Range == OutOfRangeBucket {
			outOfRange = b.Count
		}
	}
	if total != int64(len(scores)) {
		t.Errorf("tổng count = %d, muốn %d (không score nào bị rơi)", total, len(scores))
	}
	if outOfRange != 2 {
		t.Errorf("OutOfRange = %d, muốn 2 (-1 và 100.1)", outOfRange)
	}
}

// Biên: 0 vào bucket đầu, 100 vào bucket cuối (90-100 đóng hai đầu),
// 10 vào bucket 10-20 (biên dưới đóng).
func TestBucketizeScores_Bien(t *testing.T) {
	got := BucketizeScores([]float64{0, 10, 100}, nil)
	counts := make(map[string]int64)
	for _, b := range got {
		counts[b.Range] = b.Count
	}
	if counts["0-10"] != 1 {
		t.Errorf("bucket 0-10 = %d, muốn 1 (score 0)", counts["0-10"])
	}
	if counts["10-20"] != 1 {
		t.Errorf("bucket 10-20 = %d, muốn 1 (score 10, biên dưới đóng)", counts["10-20"])
	}
	if counts["90-100"] != 1 {
		t.Errorf("bucket 90-100 = %d, muốn 1 (score 100)", counts["90-100"])
	}
	if counts[OutOfRangeBucket] != 0 {
		t.Errorf("OutOfRange = %d, muốn 0", counts[OutOfRangeBucket])
	}
}

// Bucket trả về theo thứ tự biên dưới tăng dần, OutOfRange cuối cùng.
func TestBucketizeScores_ThuTu(t *testing.T) {
	buckets := BucketizeScores(nil, nil)
	wantOrder := []string{"0-10", "10-20", "20-30", "30-40", "40-50", "50-60",
		"60-70", "70-80", "80-90", "90-100", OutOfRangeBucket}
	if len(buckets) != len(wantOrder) {
		t.Fatalf("số bucket = %d, muốn %d", len(buckets), len(wantOrder))
	}
	for i, b := range buckets {
		if b.Range != wantOrder[i] {
			t.Errorf("bucket[%d] = %s, muốn %s", i, b.Range, wantOrder[i])
		}
	}
}
