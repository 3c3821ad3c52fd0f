package subdto

// SubscriberCreateInput dùng cho tạo subscriber (tầng transport)
type SubscriberCreateInput struct {
	SubscriberIdentifier string `json:"subscriberId" bson:"subscriberId" validate:"required,no_xss,no_sql_injection"`
	FirstName            string `json:"firstName" bson:"firstName" validate:"omitempty,no_xss"`
	LastName             string `json:"lastName" bson:"lastName" validate:"omitempty,no_xss"`
	Email                string `json:"email" bson:"email" validate:"omitempty,email"`
	Phone                string `json:"phone" bson:"phone" validate:"omitempty,no_xss"`
	Avatar               string `json:"avatar" bson:"avatar" validate:"omitempty,url"`
}

// SubscriberUpdateInput dùng cho cập nhật subscriber (tầng transport).
// SubscriberIdentifier không đổi sau khi tạo.
type SubscriberUpdateInput struct {
	FirstName string `json:"firstName" bson:"firstName" validate:"omitempty,no_xss"`
	LastName  string `json:"lastName" bson:"lastName" validate:"omitempty,no_xss"`
	Email     string `json:"email" bson:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" bson:"phone" validate:"omitempty,no_xss"`
	Avatar    string `json:"avatar" bson:"avatar" validate:"omitempty,url"`
}
