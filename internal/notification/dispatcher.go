package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"my_godfather/internal/common"
	"my_godfather/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/gomail.v2"
)

// QueueDispatcher đẩy thông báo vào collection delivery_queue, worker delivery
// (ngoài phạm vi engine thống kê) sẽ lấy ra xử lý theo priority.
type QueueDispatcher struct{}

// NewQueueDispatcher tạo QueueDispatcher.
func NewQueueDispatcher() *QueueDispatcher {
	return &QueueDispatcher{}
}

// Notify insert một item pending vào delivery queue.
func (d *QueueDispatcher) Notify(ctx context.Context, targetRole, title, message, severity, category string) error {
	coll, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryQueue)
	if !ok {
		return fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.DeliveryQueue, common.ErrNotFound)
	}
	doc := bson.M{
		"targetRole": targetRole,
		"title":      title,
		"message":    message,
		"severity":   severity,
		"category":   category,
		"status":     StatusPending,
		"priority":   GetPriorityFromSeverity(severity),
		"createdAt":  time.Now(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return common.NewError(common.ErrCodeNotificationDispatch,
			fmt.Sprintf("Không đẩy được thông báo vào hàng đợi: %v", err),
			common.StatusInternalServerError, nil)
	}
	return nil
}

// EmailDispatcher gửi thông báo trực tiếp qua SMTP. Dùng cho cảnh báo đến admin
// khi không muốn đi qua hàng đợi.
type EmailDispatcher struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
}

// NewEmailDispatcher tạo EmailDispatcher. to là danh sách email phân cách dấu phẩy.
func NewEmailDispatcher(host string, port int, username, password, from, to string) *EmailDispatcher {
	var recipients []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return &EmailDispatcher{
		host: host, port: port,
		username: username, password: password,
		from: from, to: recipients,
	}
}

// Notify gửi một email cho toàn bộ danh sách nhận.
func (d *EmailDispatcher) Notify(ctx context.Context, targetRole, title, message, severity, category string) error {
	if d.host == "" || len(d.to) == 0 {
		return nil // chưa cấu hình SMTP thì bỏ qua
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", d.from)
	msg.SetHeader("To", d.to...)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] %s", strings.ToUpper(severity), title))
	msg.SetBody("text/plain; charset=utf-8",
		fmt.Sprintf("%s\n\nCategory: %s\nSeverity: %s", message, category, severity))

	dialer := gomail.NewDialer(d.host, d.port, d.username, d.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return common.NewError(common.ErrCodeNotificationDispatch,
			fmt.Sprintf("Không gửi được email cảnh báo: %v", err),
			common.StatusInternalServerError, nil)
	}
	return nil
}

// MultiDispatcher fan-out một thông báo cho nhiều dispatcher, trả về lỗi đầu tiên
// gặp phải (các dispatcher còn lại vẫn được gọi).
type MultiDispatcher struct {
	dispatchers []Dispatcher
}

// Dispatcher contract gửi thông báo, trùng với contract phía service thống kê.
type Dispatcher interface {
	Notify(ctx context.Context, targetRole, title, message, severity, category string) error
}

// NewMultiDispatcher tạo MultiDispatcher từ danh sách dispatcher con.
func NewMultiDispatcher(dispatchers ...Dispatcher) *MultiDispatcher {
	return &MultiDispatcher{dispatchers: dispatchers}
}

// Notify gọi lần lượt từng dispatcher con.
func (d *MultiDispatcher) Notify(ctx context.Context, targetRole, title, message, severity, category string) error {
	var firstErr error
	for _, child := range d.dispatchers {
		if err := child.Notify(ctx, targetRole, title, message, severity, category); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
