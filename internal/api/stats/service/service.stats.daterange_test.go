// Package statssvc - test quy đổi period/from/to thành mốc ngày.
package statssvc

import (
	"errors"
	"testing"
	"time"

	"my_godfather/internal/common"
)

func TestResolveRange_FromToThangPeriod(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	start, end, err := s.ResolveRange(PeriodMonth, "2026-08-01", "2026-08-15")
	if err != nil {
		t.Fatalf("ResolveRange lỗi: %v", err)
	}
	wantStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 8, 15, 23, 59, 59, 999000000, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, muốn %v (from/to thắng period)", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, muốn %v", end, wantEnd)
	}
}

func TestResolveRange_Day(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	start, end, err := s.ResolveRange(PeriodDay, "", "")
	if err != nil {
		t.Fatalf("ResolveRange lỗi: %v", err)
	}
	now := time.Now().UTC()
	if start.Day() != now.Day() || start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("start = %v, muốn 00:00:00 hôm nay", start)
	}
	if end.Sub(start) != 24*time.Hour-time.Millisecond {
		t.Errorf("end - start = %v, muốn 23:59:59.999", end.Sub(start))
	}
}

func TestResolveRange_Week7Ngay(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	start, end, err := s.ResolveRange(PeriodWeek, "", "")
	if err != nil {
		t.Fatalf("ResolveRange lỗi: %v", err)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days != 7 {
		t.Errorf("week phủ %d ngày, muốn 7 (tính cả hôm nay)", days)
	}
}

func TestResolveRange_PeriodRongLaDay(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	start1, end1, err := s.ResolveRange("", "", "")
	if err != nil {
		t.Fatalf("period rỗng lỗi: %v", err)
	}
	start2, end2, err := s.ResolveRange(PeriodDay, "", "")
	if err != nil {
		t.Fatalf("period day lỗi: %v", err)
	}
	if !start1.Equal(start2) || !end1.Equal(end2) {
		t.Error("period rỗng phải tương đương day")
	}
}

func TestResolveRange_NgayHong(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	_, _, err := s.ResolveRange("", "30-08-2026", "")
	if !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("from sai định dạng trả về %v, muốn wrap ErrInvalidFormat", err)
	}

	_, _, err = s.ResolveRange("", "2026-08-10", "2026-08-01")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("to trước from trả về %v, muốn wrap ErrInvalidInput", err)
	}

	_, _, err = s.ResolveRange("year", "", "")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("period lạ trả về %v, muốn wrap ErrInvalidInput", err)
	}
}

func TestResolveRange_ThieuMotDau(t *testing.T) {
	s := newTestService(nil, nil, nil, nil, nil, nil)

	start, end, err := s.ResolveRange("", "2026-08-20", "")
	if err != nil {
		t.Fatalf("chỉ có from lỗi: %v", err)
	}
	if start.Day() != 20 || end.Day() != 20 {
		t.Errorf("chỉ có from phải thành range một ngày, được [%v, %v]", start, end)
	}
}
