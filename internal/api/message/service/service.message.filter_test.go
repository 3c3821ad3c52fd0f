// Package messagesvc - Test bộ lọc message theo subscriber và pipeline thống kê.
package messagesvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JoWinner/novu/internal/api/message/models"
	"github.com/JoWinner/novu/internal/utility"
)

func TestBuildSubscriberMessageFilter_MacDinh(t *testing.T) {
	s := &MessageService{}
	envID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	filter, err := s.buildSubscriberMessageFilter(context.Background(), envID, subscriberID, models.ChannelInApp, models.SubscriberMessageQuery{})
	require.NoError(t, err)

	assert.Equal(t, envID, filter["ownerEnvironmentId"], "filter phải scope theo environment")
	assert.Equal(t, subscriberID, filter["subscriberId"], "filter phải scope theo subscriber")
	assert.Equal(t, models.ChannelInApp, filter["channel"])
	assert.Equal(t, false, filter["deleted"], "luôn loại message đã xóa mềm")

	// Không lọc feed, không lọc seen khi query rỗng
	_, hasFeed := filter["feedId"]
	assert.False(t, hasFeed, "không được lọc feedId khi query không yêu cầu")
	_, hasSeen := filter["seen"]
	assert.False(t, hasSeen, "không được lọc seen khi query không yêu cầu")
}

func TestBuildSubscriberMessageFilter_KhongChannel(t *testing.T) {
	s := &MessageService{}

	filter, err := s.buildSubscriberMessageFilter(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "", models.SubscriberMessageQuery{})
	require.NoError(t, err)

	_, hasChannel := filter["channel"]
	assert.False(t, hasChannel, "channel rỗng nghĩa là không lọc theo channel")
}

func TestBuildSubscriberMessageFilter_Unassigned(t *testing.T) {
	s := &MessageService{}

	query := models.SubscriberMessageQuery{Unassigned: true}
	filter, err := s.buildSubscriberMessageFilter(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.ChannelInApp, query)
	require.NoError(t, err)

	// Message không gắn feed lưu feedId null tường minh, filter phải match null
	assert.Equal(t, bson.M{"$eq": nil}, filter["feedId"])
}

func TestBuildSubscriberMessageFilter_SeenTriState(t *testing.T) {
	s := &MessageService{}
	envID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	// nil = không lọc
	filter, err := s.buildSubscriberMessageFilter(context.Background(), envID, subscriberID, "", models.SubscriberMessageQuery{Seen: nil})
	require.NoError(t, err)
	_, hasSeen := filter["seen"]
	assert.False(t, hasSeen)

	// true / false = lọc theo giá trị
	for _, seen := range []bool{true, false} {
		seenVal := seen
		filter, err := s.buildSubscriberMessageFilter(context.Background(), envID, subscriberID, "", models.SubscriberMessageQuery{Seen: &seenVal})
		require.NoError(t, err)
		assert.Equal(t, seenVal, filter["seen"])
	}
}

func TestBuildActivityGraphPipeline(t *testing.T) {
	envID := primitive.NewObjectID()
	since := int64(1700000000000)

	pipeline := BuildActivityGraphPipeline(envID, since)
	require.Len(t, pipeline, 3, "pipeline gồm $match, $group, $sort")

	match, ok := pipeline[0]["$match"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, envID, match["ownerEnvironmentId"])
	assert.Equal(t, false, match["deleted"])
	assert.Equal(t, bson.M{"$gte": since}, match["createdAt"])

	group, ok := pipeline[1]["$group"].(bson.M)
	require.True(t, ok)
	dateToString, ok := group["_id"].(bson.M)["$dateToString"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "%Y-%m-%d", dateToString["format"])
	// createdAt lưu Unix milli, phải đi qua $toDate trước khi format
	assert.Equal(t, bson.M{"$toDate": "$createdAt"}, dateToString["date"])

	sort, ok := pipeline[2]["$sort"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, -1, sort["_id"], "ngày mới nhất phải đứng trước")
}

func TestValidateForCreate(t *testing.T) {
	s := &MessageService{}
	envID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	// Hợp lệ
	err := s.validateForCreate(models.Message{
		OwnerEnvironmentID: envID,
		SubscriberID:       subscriberID,
		Channel:            models.ChannelEmail,
	})
	assert.NoError(t, err)

	// Thiếu environment
	err = s.validateForCreate(models.Message{SubscriberID: subscriberID, Channel: models.ChannelEmail})
	assert.Error(t, err, "thiếu ownerEnvironmentId phải bị từ chối")

	// Thiếu subscriber
	err = s.validateForCreate(models.Message{OwnerEnvironmentID: envID, Channel: models.ChannelEmail})
	assert.Error(t, err, "thiếu subscriberId phải bị từ chối")

	// Channel không hợp lệ
	err = s.validateForCreate(models.Message{OwnerEnvironmentID: envID, SubscriberID: subscriberID, Channel: "fax"})
	assert.Error(t, err, "channel ngoài danh sách phải bị từ chối")

	// Status không hợp lệ (status rỗng thì hợp lệ - sẽ nhận default pending)
	err = s.validateForCreate(models.Message{OwnerEnvironmentID: envID, SubscriberID: subscriberID, Channel: models.ChannelEmail, Status: "delivered"})
	assert.Error(t, err, "status ngoài danh sách phải bị từ chối")

	err = s.validateForCreate(models.Message{OwnerEnvironmentID: envID, SubscriberID: subscriberID, Channel: models.ChannelEmail, Status: ""})
	assert.NoError(t, err)
}

// TestForceUnseen kiểm tra đường đếm chưa đọc luôn ép seen=false,
// kể cả khi caller truyền Seen=true trong query.
func TestForceUnseen(t *testing.T) {
	s := &MessageService{}
	envID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	seen := true
	query := forceUnseen(models.SubscriberMessageQuery{Seen: &seen})
	require.NotNil(t, query.Seen)
	assert.False(t, *query.Seen, "Seen=true từ caller phải bị ghi đè thành false")

	filter, err := s.buildSubscriberMessageFilter(context.Background(), envID, subscriberID, models.ChannelInApp, query)
	require.NoError(t, err)
	assert.Equal(t, false, filter["seen"], "filter đếm chưa đọc phải mang seen=false")

	// Seen nil cũng bị ép về false
	query = forceUnseen(models.SubscriberMessageQuery{})
	require.NotNil(t, query.Seen)
	assert.False(t, *query.Seen)
}

// TestBuildDeletedFilter kiểm tra điều kiện lọc bổ sung không phá được phạm vi tenant
func TestBuildDeletedFilter(t *testing.T) {
	envID := primitive.NewObjectID()
	subscriberID := primitive.NewObjectID()

	// Không có điều kiện bổ sung
	filter := buildDeletedFilter(envID, nil)
	assert.Equal(t, envID, filter["ownerEnvironmentId"])
	assert.Equal(t, true, filter["deleted"])

	// Điều kiện bổ sung được gộp vào
	filter = buildDeletedFilter(envID, bson.M{"channel": models.ChannelEmail, "subscriberId": subscriberID})
	assert.Equal(t, models.ChannelEmail, filter["channel"])
	assert.Equal(t, subscriberID, filter["subscriberId"])
	assert.Equal(t, envID, filter["ownerEnvironmentId"])

	// Điều kiện bổ sung không ghi đè được scope
	otherEnv := primitive.NewObjectID()
	filter = buildDeletedFilter(envID, bson.M{"ownerEnvironmentId": otherEnv, "deleted": false})
	assert.Equal(t, envID, filter["ownerEnvironmentId"], "extra không được đổi environment scope")
	assert.Equal(t, true, filter["deleted"], "extra không được lật cờ deleted")
}

// TestBuildStatusUpdate kiểm tra providerPayload luôn bị ghi đè trong $set
func TestBuildStatusUpdate(t *testing.T) {
	payload := map[string]interface{}{"messageId": "provider-123"}
	set := buildStatusUpdate(models.StatusSent, payload, "", "")
	assert.Equal(t, models.StatusSent, set["status"])
	assert.Equal(t, payload, set["providerPayload"])

	// Callback không mang payload vẫn phải xóa payload cũ
	set = buildStatusUpdate(models.StatusError, nil, "ERR_42", "provider timeout")
	require.Contains(t, set, "providerPayload", "providerPayload phải luôn có mặt trong $set")
	assert.Equal(t, map[string]interface{}{}, set["providerPayload"], "payload nil phải ghi đè bằng map rỗng")
	assert.Equal(t, "ERR_42", set["errorId"])
	assert.Equal(t, "provider timeout", set["errorText"])
}

// TestSeenUpdateDocumentShape kiểm tra document $set khi đổi trạng thái đọc:
// luôn có cả seen và lastSeenDate, kể cả khi đánh dấu chưa đọc.
func TestSeenUpdateDocumentShape(t *testing.T) {
	customBson := &utility.CustomBson{}

	update, err := customBson.Set(models.SeenUpdate{
		Seen:         false,
		LastSeenDate: 1700000000000,
	})
	require.NoError(t, err, "Tạo document $set không được trả về lỗi")

	setDoc, ok := update["$set"].(map[string]interface{})
	require.True(t, ok, "Update phải chứa key $set dạng map")
	assert.Equal(t, false, setDoc["seen"], "seen=false phải được ghi tường minh")
	assert.Equal(t, int64(1700000000000), setDoc["lastSeenDate"], "lastSeenDate phải luôn có mặt trong $set")
}
