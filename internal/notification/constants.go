// Package notification gửi cảnh báo thống kê ra ngoài: hàng đợi delivery
// trong MongoDB và email qua SMTP.
package notification

// Severity của thông báo.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Status của item trong delivery queue.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// SeverityPriority mapping (1 = xử lý trước). Dùng để sort queue items.
var SeverityPriority = map[string]int{
	SeverityCritical: 1,
	SeverityWarning:  2,
	SeverityInfo:     3,
}

// GetPriorityFromSeverity tính priority từ severity, default = 2.
func GetPriorityFromSeverity(severity string) int {
	priority := SeverityPriority[severity]
	if priority == 0 {
		return 2
	}
	return priority
}
