// Package models - Subscriber thuộc domain Subscriber.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber - Người nhận message của một environment.
// SubscriberIdentifier là định danh bên ngoài (do hệ thống nguồn cấp), duy nhất trong environment.
type Subscriber struct {
	ID                   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerEnvironmentID   primitive.ObjectID `json:"ownerEnvironmentId" bson:"ownerEnvironmentId" index:"single:1"`
	SubscriberIdentifier string             `json:"subscriberId" bson:"subscriberId" index:"single:1"`
	FirstName            string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName             string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email                string             `json:"email,omitempty" bson:"email,omitempty" index:"single:1"`
	Phone                string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar               string             `json:"avatar,omitempty" bson:"avatar,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
