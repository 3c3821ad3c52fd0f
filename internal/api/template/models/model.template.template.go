// Package models - MessageTemplate thuộc domain Template.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageTemplate - Mẫu nội dung để sinh message.
// FeedID dùng con trỏ: template không gắn feed lưu null, message sinh từ template
// kế thừa feedId này cho filter feed ở tầng message.
type MessageTemplate struct {
	ID                 primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerEnvironmentID primitive.ObjectID  `json:"ownerEnvironmentId" bson:"ownerEnvironmentId" index:"single:1"`
	Name               string              `json:"name" bson:"name" index:"single:1"`
	Channel            string              `json:"channel" bson:"channel"`
	FeedID             *primitive.ObjectID `json:"feedId" bson:"feedId"`
	Subject            string              `json:"subject,omitempty" bson:"subject,omitempty"`
	Content            string              `json:"content,omitempty" bson:"content,omitempty"`
	CreatedAt          int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt          int64               `json:"updatedAt" bson:"updatedAt"`
}
