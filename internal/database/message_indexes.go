// Package database - Index bổ sung cho message store (compound nhiều field) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"github.com/JoWinner/novu/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMessageAdditionalIndexes tạo các index bổ sung cho message store.
// Gọi sau CreateIndexes cho từng collection.
func CreateMessageAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	messages := db.Collection(global.MongoDB_ColNames.Messages)

	// messages: (ownerEnvironmentId, subscriberId, channel, createdAt desc) — feed của subscriber, sort mới nhất trước
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "subscriberId", Value: 1},
			{Key: "channel", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("message_env_subscriber_channel_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (ownerEnvironmentId, subscriberId, channel, seen) — đếm unseen
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "subscriberId", Value: 1},
			{Key: "channel", Value: 1},
			{Key: "seen", Value: 1},
		},
		Options: options.Index().SetName("message_env_subscriber_channel_seen"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (ownerEnvironmentId, notificationId) — tra cứu theo notification
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "notificationId", Value: 1},
		},
		Options: options.Index().SetName("message_env_notification"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (ownerEnvironmentId, templateId) — bulk gán lại feed theo template
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "templateId", Value: 1},
		},
		Options: options.Index().SetName("message_env_template"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (ownerEnvironmentId, createdAt) — thống kê hoạt động theo ngày
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("message_env_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// feeds: (ownerEnvironmentId, identifier) unique — identifier duy nhất trong một environment
	feeds := db.Collection(global.MongoDB_ColNames.Feeds)
	if _, err := feeds.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "identifier", Value: 1},
		},
		Options: options.Index().SetName("feed_env_identifier_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// subscribers: (ownerEnvironmentId, subscriberId) unique — external id duy nhất trong một environment
	subscribers := db.Collection(global.MongoDB_ColNames.Subscribers)
	if _, err := subscribers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerEnvironmentId", Value: 1},
			{Key: "subscriberId", Value: 1},
		},
		Options: options.Index().SetName("subscriber_env_subscriber_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
