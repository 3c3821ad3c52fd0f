package msgdto

import (
	"github.com/JoWinner/novu/internal/api/message/models"
)

// MessageTriggerInput dùng cho tạo message từ workflow engine (tầng transport).
// Các trường ID là hex string, được transform sang ObjectID khi chuyển về model.
type MessageTriggerInput struct {
	SubscriberID   string                 `json:"subscriberId" bson:"subscriberId" validate:"required,len=24,hexadecimal" transform:"str_objectid"`
	NotificationID string                 `json:"notificationId" bson:"notificationId" validate:"omitempty,len=24,hexadecimal" transform:"str_objectid,optional"`
	TemplateID     string                 `json:"templateId" bson:"templateId" validate:"omitempty,len=24,hexadecimal" transform:"str_objectid,optional"`
	TransactionID  string                 `json:"transactionId" bson:"transactionId" validate:"omitempty,no_xss"`
	Channel        string                 `json:"channel" bson:"channel" validate:"required,oneof=in_app email sms push chat"`
	FeedID         string                 `json:"feedId" bson:"feedId" validate:"omitempty,len=24,hexadecimal" transform:"str_objectid_ptr,optional"`
	Subject        string                 `json:"subject" bson:"subject" validate:"omitempty,no_xss"`
	Content        string                 `json:"content" bson:"content" validate:"omitempty"`
	Payload        map[string]interface{} `json:"payload" bson:"payload" validate:"omitempty"`
	CTA            *models.MessageCTA     `json:"cta" bson:"cta" validate:"omitempty"`
}

// MessageUpdateInput dùng cho cập nhật nội dung message (tầng transport).
// Trạng thái delivery và trạng thái đọc đi qua các endpoint chuyên biệt.
type MessageUpdateInput struct {
	Subject string                 `json:"subject" bson:"subject" validate:"omitempty,no_xss"`
	Content string                 `json:"content" bson:"content" validate:"omitempty"`
	Payload map[string]interface{} `json:"payload" bson:"payload" validate:"omitempty"`
}

// MessageStatusInput dùng cho provider callback cập nhật trạng thái delivery
type MessageStatusInput struct {
	Status          string                 `json:"status" bson:"status" validate:"required,oneof=pending sent error warning"`
	ProviderPayload map[string]interface{} `json:"providerPayload" bson:"providerPayload" validate:"omitempty"`
	ErrorID         string                 `json:"errorId" bson:"errorId" validate:"omitempty,no_xss"`
	ErrorText       string                 `json:"errorText" bson:"errorText" validate:"omitempty"`
}

// MessageSeenInput dùng cho đánh dấu message đã đọc/chưa đọc.
// Seen dùng con trỏ để phân biệt thiếu trường với giá trị false.
type MessageSeenInput struct {
	SubscriberID string `json:"subscriberId" bson:"subscriberId" validate:"required,len=24,hexadecimal"`
	Seen         *bool  `json:"seen" bson:"seen" validate:"required"`
}
