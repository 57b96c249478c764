// File: service.stats.export.go - render PeriodStats ra table / csv / json.
// Ba renderer độc lập trên cùng một input; thêm format mới không đụng PeriodStats.
package statssvc

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	statsdto "my_godfather/internal/api/stats/dto"
	"my_godfather/internal/common"

	"github.com/google/uuid"
)

// Các format export hợp lệ.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Các section hợp lệ trong export/report.
const (
	SectionUsers    = "users"
	SectionMatching = "matching"
	SectionSessions = "sessions"
	SectionFeedback = "feedback"
	SectionActivity = "activity"
)

// sectionOrder thứ tự render cố định, không phụ thuộc thứ tự caller truyền.
var sectionOrder = []string{SectionUsers, SectionMatching, SectionSessions, SectionFeedback, SectionActivity}

// exportRow một dòng dữ liệu phẳng (section, metric, value) dùng chung cho table và csv.
type exportRow struct {
	Section string
	Metric  string
	Value   string
}

// Export tính PeriodStats cho range của query rồi render theo format yêu cầu.
// Sections rỗng = render tất cả; section lạ trả về ErrInvalidInput.
func (s *StatsService) Export(ctx context.Context, query statsdto.ExportQuery) (*statsdto.ExportResult, error) {
	format := strings.ToLower(query.Format)
	if format == "" {
		format = FormatTable
	}
	sections, err := parseSections(query.Sections)
	if err != nil {
		return nil, err
	}

	start, end, err := s.ResolveRange(query.Period, query.From, query.To)
	if err != nil {
		return nil, err
	}
	stats, err := s.GetPeriodStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var activity *statsdto.ActivityResult
	if sections[SectionActivity] {
		activity, err = s.GetRecentActivity(ctx, statsdto.ActivityQuery{Limit: defaultActivityLimit})
		if err != nil {
			return nil, err
		}
	}

	stamp := time.Now().In(s.loc).Format("20060102")
	name := fmt.Sprintf("stats_%s_%s", stamp, uuid.NewString()[:8])

	switch format {
	case FormatJSON:
		content, err := renderJSON(stats, activity, sections)
		if err != nil {
			return nil, err
		}
		return &statsdto.ExportResult{
			Filename:    name + ".json",
			ContentType: "application/json",
			Content:     content,
		}, nil
	case FormatCSV:
		content, err := renderCSV(buildRows(stats, activity, sections))
		if err != nil {
			return nil, err
		}
		return &statsdto.ExportResult{
			Filename:    name + ".csv",
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatTable:
		return &statsdto.ExportResult{
			Filename:    name + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Content:     renderTable(buildRows(stats, activity, sections)),
		}, nil
	default:
		return nil, fmt.Errorf("format không hợp lệ %q: %w", query.Format, common.ErrInvalidInput)
	}
}

// parseSections tách danh sách section phân cách dấu phẩy thành set.
// Rỗng = tất cả section.
func parseSections(raw string) (map[string]bool, error) {
	valid := map[string]bool{
		SectionUsers: true, SectionMatching: true, SectionSessions: true,
		SectionFeedback: true, SectionActivity: true,
	}
	out := make(map[string]bool, len(valid))
	if strings.TrimSpace(raw) == "" {
		for k := range valid {
			out[k] = true
		}
		return out, nil
	}
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !valid[name] {
			return nil, fmt.Errorf("section không hợp lệ %q: %w", name, common.ErrInvalidInput)
		}
		out[name] = true
	}
	return out, nil
}

// buildRows flatten các section được chọn thành dòng (section, metric, value).
func buildRows(stats *statsdto.PeriodStats, activity *statsdto.ActivityResult, sections map[string]bool) []exportRow {
	var rows []exportRow
	add := func(section, metric, value string) {
		rows = append(rows, exportRow{Section: section, Metric: metric, Value: value})
	}
	for _, section := range sectionOrder {
		if !sections[section] {
			continue
		}
		switch section {
		case SectionUsers:
			add(section, "mentors_total", strconv.FormatInt(stats.Users.Mentors.Total, 10))
			add(section, "mentors_active", strconv.FormatInt(stats.Users.Mentors.Active, 10))
			add(section, "mentors_availability_rate", strconv.Itoa(stats.Users.Mentors.AvailabilityRate))
			add(section, "mentees_total", strconv.FormatInt(stats.Users.Mentees.Total, 10))
			add(section, "mentees_waiting", strconv.FormatInt(stats.Users.Mentees.Waiting, 10))
		case SectionMatching:
			add(section, "total", strconv.FormatInt(stats.Matching.Total, 10))
			add(section, "successful", strconv.FormatInt(stats.Matching.Successful, 10))
			add(section, "success_rate", strconv.Itoa(stats.Matching.SuccessRate))
			add(section, "avg_score", strconv.FormatFloat(stats.Matching.AvgScore, 'f', 1, 64))
			add(section, "last_score", strconv.FormatFloat(stats.Matching.LastScore, 'f', 1, 64))
		case SectionSessions:
			add(section, "total", strconv.FormatInt(stats.Sessions.Total, 10))
			add(section, "completed", strconv.FormatInt(stats.Sessions.Completed, 10))
			add(section, "completion_rate", strconv.Itoa(stats.Sessions.CompletionRate))
			add(section, "avg_duration", strconv.FormatInt(stats.Sessions.AvgDuration, 10))
			add(section, "today", strconv.FormatInt(stats.Sessions.Today, 10))
		case SectionFeedback:
			add(section, "total", strconv.FormatInt(stats.Feedback.Total, 10))
			add(section, "avg_score", strconv.FormatFloat(stats.Feedback.AvgScore, 'f', 1, 64))
			add(section, "satisfaction_rate", strconv.Itoa(stats.Feedback.SatisfactionRate))
		case SectionActivity:
			if activity == nil {
				continue
			}
			for _, item := range activity.Items {
				add(section, item.Timestamp.Format("2006-01-02 15:04"), item.Message)
			}
		}
	}
	return rows
}

// renderTable render dạng bảng căn cột (paginated document dạng text).
func renderTable(rows []exportRow) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SECTION\tMETRIC\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Section, r.Metric, r.Value)
	}
	w.Flush()
	return buf.Bytes()
}

// renderCSV render dạng delimited text, header section,metric,value.
func renderCSV(rows []exportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"section", "metric", "value"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Section, r.Metric, r.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON render structured payload, chỉ các section được chọn.
func renderJSON(stats *statsdto.PeriodStats, activity *statsdto.ActivityResult, sections map[string]bool) ([]byte, error) {
	payload := make(map[string]interface{}, len(sections))
	if sections[SectionUsers] {
		payload[SectionUsers] = stats.Users
	}
	if sections[SectionMatching] {
		payload[SectionMatching] = stats.Matching
	}
	if sections[SectionSessions] {
		payload[SectionSessions] = stats.Sessions
	}
	if sections[SectionFeedback] {
		payload[SectionFeedback] = stats.Feedback
	}
	if sections[SectionActivity] && activity != nil {
		payload[SectionActivity] = activity.Items
	}
	return json.MarshalIndent(payload, "", "  ")
}
