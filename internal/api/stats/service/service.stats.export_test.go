// Package statssvc - test 3 renderer export và chọn section.
package statssvc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	statsdto "my_godfather/internal/api/stats/dto"
	"my_godfather/internal/common"
	statssrc "my_godfather/internal/api/stats/source"
)

func exportService() *StatsService {
	return newTestService(
		&fakeUsers{groups: []statssrc.RoleGroup{{Role: statssrc.RoleMentor, Total: 6, Active: 3}}},
		nil,
		&fakeMatching{scores: []float64{88}},
		&fakeSessions{},
		&fakeMessages{count: 2},
		nil,
	)
}

func TestExport_CSVHeaderVaSection(t *testing.T) {
	s := exportService()
	got, err := s.Export(context.Background(), statsdto.ExportQuery{Format: FormatCSV, Sections: "users,matching"})
	if err != nil {
		t.Fatalf("Export csv lỗi: %v", err)
	}
	if got.ContentType != "text/csv" {
		t.Errorf("contentType = %s, muốn text/csv", got.ContentType)
	}
	if !strings.HasSuffix(got.Filename, ".csv") {
		t.Errorf("filename = %s, muốn đuôi .csv", got.Filename)
	}
	content := string(got.Content)
	if !strings.HasPrefix(content, "section,metric,value") {
		t.Errorf("csv thiếu header, bắt đầu bằng: %.40s", content)
	}
	if !strings.Contains(content, "users,mentors_total,6") {
		t.Error("csv thiếu dòng users.mentors_total")
	}
	if strings.Contains(content, "sessions,") {
		t.Error("section sessions không được render khi không yêu cầu")
	}
}

func TestExport_JSONChiSectionYeuCau(t *testing.T) {
	s := exportService()
	got, err := s.Export(context.Background(), statsdto.ExportQuery{Format: FormatJSON, Sections: "feedback"})
	if err != nil {
		t.Fatalf("Export json lỗi: %v", err)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(got.Content, &payload); err != nil {
		t.Fatalf("output không phải JSON hợp lệ: %v", err)
	}
	if _, ok := payload[SectionFeedback]; !ok {
		t.Error("payload thiếu section feedback")
	}
	if len(payload) != 1 {
		t.Errorf("payload có %d section, muốn đúng 1", len(payload))
	}
}

func TestExport_SectionRongLaTatCa(t *testing.T) {
	s := exportService()
	got, err := s.Export(context.Background(), statsdto.ExportQuery{Format: FormatJSON})
	if err != nil {
		t.Fatalf("Export lỗi: %v", err)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(got.Content, &payload); err != nil {
		t.Fatalf("output không phải JSON hợp lệ: %v", err)
	}
	for _, section := range []string{SectionUsers, SectionMatching, SectionSessions, SectionFeedback} {
		if _, ok := payload[section]; !ok {
			t.Errorf("sections rỗng phải render tất cả, thiếu %s", section)
		}
	}
}

func TestExport_TableMacDinh(t *testing.T) {
	s := exportService()
	got, err := s.Export(context.Background(), statsdto.ExportQuery{})
	if err != nil {
		t.Fatalf("Export lỗi: %v", err)
	}
	if !strings.HasSuffix(got.Filename, ".txt") {
		t.Errorf("format rỗng phải mặc định table (.txt), filename = %s", got.Filename)
	}
	content := string(got.Content)
	if !strings.Contains(content, "SECTION") || !strings.Contains(content, "mentors_total") {
		t.Errorf("table thiếu header/dòng dữ liệu:\n%s", content)
	}
}

func TestExport_SectionLa(t *testing.T) {
	s := exportService()
	_, err := s.Export(context.Background(), statsdto.ExportQuery{Sections: "users,bogus"})
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("section lạ trả về %v, muốn wrap ErrInvalidInput", err)
	}
}

func TestExport_FilenameKhongTrung(t *testing.T) {
	s := exportService()
	a, err := s.Export(context.Background(), statsdto.ExportQuery{Format: FormatCSV})
	if err != nil {
		t.Fatalf("Export lỗi: %v", err)
	}
	b, err := s.Export(context.Background(), statsdto.ExportQuery{Format: FormatCSV})
	if err != nil {
		t.Fatalf("Export lỗi: %v", err)
	}
	if a.Filename == b.Filename {
		t.Errorf("hai lần export trùng filename %s", a.Filename)
	}
}
