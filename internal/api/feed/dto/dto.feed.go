package feeddto

// FeedCreateInput dùng cho tạo feed (tầng transport)
type FeedCreateInput struct {
	Identifier string `json:"identifier" bson:"identifier" validate:"required,no_xss,no_sql_injection"`
	Name       string `json:"name" bson:"name" validate:"required,no_xss"`
}

// FeedUpdateInput dùng cho cập nhật feed (tầng transport).
// Identifier không đổi sau khi tạo (định danh nghiệp vụ, message filter theo nó).
type FeedUpdateInput struct {
	Name string `json:"name" bson:"name" validate:"omitempty,no_xss"`
}
