// Package models - Feed thuộc domain Feed.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed - Danh mục feed (luồng tin in-app) của một environment.
// Identifier là định danh nghiệp vụ, duy nhất trong phạm vi một environment.
type Feed struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerEnvironmentID primitive.ObjectID `json:"ownerEnvironmentId" bson:"ownerEnvironmentId" index:"single:1"`
	Identifier         string             `json:"identifier" bson:"identifier" index:"single:1"`
	Name               string             `json:"name" bson:"name"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
