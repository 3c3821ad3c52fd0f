// Package models - Message thuộc domain Message.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các kênh gửi message được hỗ trợ
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelPush  = "push"
	ChannelChat  = "chat"
)

// Các trạng thái delivery của message
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusError   = "error"
	StatusWarning = "warning"
)

// IsValidChannel kiểm tra channel có thuộc tập kênh được hỗ trợ không
func IsValidChannel(channel string) bool {
	switch channel {
	case ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush, ChannelChat:
		return true
	}
	return false
}

// IsValidStatus kiểm tra status có thuộc tập trạng thái delivery không
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusSent, StatusError, StatusWarning:
		return true
	}
	return false
}

// MessageCTA - Call-to-action đính kèm message (nút bấm, link điều hướng)
type MessageCTA struct {
	Type string                 `json:"type,omitempty" bson:"type,omitempty"`
	Data map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
}

// Message - Bản ghi message đã gửi tới một subscriber trên một kênh.
// FeedID dùng con trỏ và KHÔNG omitempty: message không gắn feed lưu feedId null
// tường minh để filter {"feedId": {"$eq": null}} hoạt động đúng.
type Message struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerEnvironmentID primitive.ObjectID `json:"ownerEnvironmentId" bson:"ownerEnvironmentId" index:"single:1"`
	SubscriberID       primitive.ObjectID `json:"subscriberId" bson:"subscriberId" index:"single:1"`
	NotificationID     primitive.ObjectID `json:"notificationId,omitempty" bson:"notificationId,omitempty" index:"single:1"`
	TemplateID         primitive.ObjectID `json:"templateId,omitempty" bson:"templateId,omitempty" index:"single:1"`
	TransactionID      string             `json:"transactionId,omitempty" bson:"transactionId,omitempty" index:"single:1"`

	Channel string              `json:"channel" bson:"channel" index:"single:1"`
	FeedID  *primitive.ObjectID `json:"feedId" bson:"feedId"`

	// Nội dung
	Subject string                 `json:"subject,omitempty" bson:"subject,omitempty"`
	Content string                 `json:"content,omitempty" bson:"content,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty" bson:"payload,omitempty"`
	CTA     *MessageCTA            `json:"cta,omitempty" bson:"cta,omitempty"`

	// Trạng thái delivery
	Status          string                 `json:"status" bson:"status" index:"single:1" default:"pending"`
	ProviderPayload map[string]interface{} `json:"providerPayload,omitempty" bson:"providerPayload,omitempty"`
	ErrorID         string                 `json:"errorId,omitempty" bson:"errorId,omitempty"`
	ErrorText       string                 `json:"errorText,omitempty" bson:"errorText,omitempty"`

	// Trạng thái đọc
	Seen         bool  `json:"seen" bson:"seen" index:"single:1"`
	LastSeenDate int64 `json:"lastSeenDate,omitempty" bson:"lastSeenDate,omitempty"`

	// Soft-delete: message xóa mềm không xuất hiện trong feed/count,
	// vẫn truy vấn được qua FindDeleted
	Deleted   bool  `json:"deleted" bson:"deleted" index:"single:1"`
	DeletedAt int64 `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// SubscriberMessageQuery - Bộ lọc tùy chọn khi truy vấn message theo subscriber/channel.
// Ba trạng thái cho feed:
//   - Unassigned=false, FeedIdentifiers rỗng: không lọc theo feed
//   - Unassigned=true: chỉ lấy message không gắn feed (feedId null tường minh)
//   - FeedIdentifiers có phần tử: lọc theo các feed identifier (phân giải mỗi lần gọi)
//
// Seen dùng con trỏ: nil = không lọc, true/false = lọc theo trạng thái đọc.
type SubscriberMessageQuery struct {
	Unassigned      bool
	FeedIdentifiers []string
	Seen            *bool
}

// FeedQuery - Bộ lọc cho trang hoạt động (activity feed) toàn environment.
// Payload match đẳng thức trên các key cấp cao nhất của payload message.
type FeedQuery struct {
	Channels             []string
	TemplateIDs          []primitive.ObjectID
	Emails               []string
	SubscriberIdentifier string
	TransactionID        string
	Payload              map[string]interface{}
}

// SeenUpdate - Dữ liệu $set khi đổi trạng thái đọc. lastSeenDate không omitempty:
// đánh dấu chưa đọc vẫn phải ghi lại thời điểm tương tác.
type SeenUpdate struct {
	Seen         bool  `bson:"seen"`
	LastSeenDate int64 `bson:"lastSeenDate"`
}

// SubscriberSummary - Thông tin rút gọn của subscriber đính kèm feed item
type SubscriberSummary struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	FirstName string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
}

// TemplateSummary - Thông tin rút gọn của template đính kèm feed item
type TemplateSummary struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name,omitempty" bson:"name,omitempty"`
}

// FeedItem - Một message trong activity feed, kèm thông tin subscriber và template
type FeedItem struct {
	Message    `bson:",inline"`
	Subscriber *SubscriberSummary `json:"subscriber,omitempty" bson:"subscriber,omitempty"`
	Template   *TemplateSummary   `json:"template,omitempty" bson:"template,omitempty"`
}

// FeedResult - Kết quả activity feed: tổng số bản ghi khớp filter + trang dữ liệu
type FeedResult struct {
	TotalCount int64      `json:"totalCount"`
	Data       []FeedItem `json:"data"`
}

// DayStat - Số message theo ngày (UTC) cho biểu đồ hoạt động
type DayStat struct {
	Day   string `json:"day" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
