package tpldto

// TemplateCreateInput dùng cho tạo message template (tầng transport).
// FeedID là hex string, được transform sang *ObjectID; để trống nghĩa là không gắn feed.
type TemplateCreateInput struct {
	Name    string `json:"name" bson:"name" validate:"required,no_xss"`
	Channel string `json:"channel" bson:"channel" validate:"required,oneof=in_app email sms push chat"`
	FeedID  string `json:"feedId" bson:"feedId" validate:"omitempty,len=24,hexadecimal" transform:"str_objectid_ptr,optional"`
	Subject string `json:"subject" bson:"subject" validate:"omitempty,no_xss"`
	Content string `json:"content" bson:"content" validate:"omitempty"`
}

// TemplateUpdateInput dùng cho cập nhật message template (tầng transport).
// Channel không đổi sau khi tạo (message đã gửi mang channel cũ).
// FeedID không nằm ở đây: đổi feed phải đi qua endpoint feed-association
// để các message đã sinh từ template được gán lại feed đồng bộ.
type TemplateUpdateInput struct {
	Name    string `json:"name" bson:"name" validate:"omitempty,no_xss"`
	Subject string `json:"subject" bson:"subject" validate:"omitempty,no_xss"`
	Content string `json:"content" bson:"content" validate:"omitempty"`
}

// TemplateFeedAssociationInput dùng cho endpoint gán feed cho template.
// FeedID để trống nghĩa là gỡ template và các message của nó khỏi feed.
type TemplateFeedAssociationInput struct {
	FeedID string `json:"feedId" bson:"feedId" validate:"omitempty,len=24,hexadecimal"`
}
