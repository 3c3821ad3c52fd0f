package messagesvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/JoWinner/novu/internal/api/base/models"
	basesvc "github.com/JoWinner/novu/internal/api/base/service"
	feedsvc "github.com/JoWinner/novu/internal/api/feed/service"
	"github.com/JoWinner/novu/internal/api/message/models"
	subsvc "github.com/JoWinner/novu/internal/api/subscriber/service"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/global"
	"github.com/JoWinner/novu/internal/utility"
)

// MessageService là cấu trúc chứa các phương thức liên quan đến Message
type MessageService struct {
	*basesvc.BaseServiceMongoImpl[models.Message]
	feedService       *feedsvc.FeedService
	subscriberService *subsvc.SubscriberService
}

// NewMessageService tạo mới MessageService
func NewMessageService(feedService *feedsvc.FeedService, subscriberService *subsvc.SubscriberService) (*MessageService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Messages)
	if !exist {
		return nil, fmt.Errorf("failed to get messages collection: %v", common.ErrNotFound)
	}

	return &MessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Message](collection),
		feedService:          feedService,
		subscriberService:    subscriberService,
	}, nil
}

// validateForCreate kiểm tra các trường bắt buộc và enum trước khi insert
func (s *MessageService) validateForCreate(data models.Message) error {
	if data.OwnerEnvironmentID.IsZero() {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Thiếu ownerEnvironmentId khi tạo message",
			common.StatusBadRequest,
			nil,
		)
	}
	if data.SubscriberID.IsZero() {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Thiếu subscriberId khi tạo message",
			common.StatusBadRequest,
			nil,
		)
	}
	if !models.IsValidChannel(data.Channel) {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Channel '%s' không hợp lệ. Các channel được hỗ trợ: in_app, email, sms, push, chat", data.Channel),
			common.StatusBadRequest,
			nil,
		)
	}
	if data.Status != "" && !models.IsValidStatus(data.Status) {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Status '%s' không hợp lệ. Các status được hỗ trợ: pending, sent, error, warning", data.Status),
			common.StatusBadRequest,
			nil,
		)
	}
	return nil
}

// InsertOne override để kiểm tra trường bắt buộc và enum trước khi insert.
// Status để trống sẽ nhận giá trị mặc định "pending" từ tầng base.
func (s *MessageService) InsertOne(ctx context.Context, data models.Message) (models.Message, error) {
	if err := s.validateForCreate(data); err != nil {
		return data, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// FindByNotificationIds lấy các message thuộc một hoặc nhiều notification trong environment
func (s *MessageService) FindByNotificationIds(ctx context.Context, envID primitive.ObjectID, notificationIDs []primitive.ObjectID) ([]models.Message, error) {
	if len(notificationIDs) == 0 {
		return []models.Message{}, nil
	}

	filter := bson.M{
		"ownerEnvironmentId": envID,
		"notificationId":     bson.M{"$in": notificationIDs},
	}
	return s.Find(ctx, filter, nil)
}

// UpdateFeedByTemplateId gán lại feed cho toàn bộ message in-app sinh từ một template.
// feedID nil nghĩa là gỡ message khỏi feed (feedId lưu null tường minh).
// Trả về số message đã được cập nhật.
func (s *MessageService) UpdateFeedByTemplateId(ctx context.Context, envID, templateID primitive.ObjectID, feedID *primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"ownerEnvironmentId": envID,
		"templateId":         templateID,
	}
	update := bson.M{
		"$set": bson.M{
			"feedId":    feedID,
			"updatedAt": utility.CurrentTimeInMilli(),
		},
	}

	count, err := s.Collection().UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	logrus.WithFields(logrus.Fields{
		"templateId": templateID.Hex(),
		"modified":   count.ModifiedCount,
	}).Debug("Đã gán lại feed cho các message theo template")

	return count.ModifiedCount, nil
}

// UpdateMessageStatus cập nhật trạng thái delivery của message (provider callback).
// Chuyển trạng thái không bị ràng buộc thứ tự: provider có thể retry hoặc báo lỗi muộn,
// nên sent -> error hay error -> sent đều hợp lệ.
func (s *MessageService) UpdateMessageStatus(ctx context.Context, envID, messageID primitive.ObjectID, status string, providerPayload map[string]interface{}, errorID, errorText string) (models.Message, error) {
	var zero models.Message
	if !models.IsValidStatus(status) {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Status '%s' không hợp lệ. Các status được hỗ trợ: pending, sent, error, warning", status),
			common.StatusBadRequest,
			nil,
		)
	}

	filter := bson.M{
		"_id":                messageID,
		"ownerEnvironmentId": envID,
	}
	return s.UpdateOne(ctx, filter, bson.M{"$set": buildStatusUpdate(status, providerPayload, errorID, errorText)}, nil)
}

// buildStatusUpdate dựng phần $set cho cập nhật trạng thái delivery.
// providerPayload luôn được ghi đè: callback không mang payload sẽ xóa payload cũ.
func buildStatusUpdate(status string, providerPayload map[string]interface{}, errorID, errorText string) bson.M {
	if providerPayload == nil {
		providerPayload = map[string]interface{}{}
	}
	return bson.M{
		"status":          status,
		"errorId":         errorID,
		"errorText":       errorText,
		"providerPayload": providerPayload,
	}
}

// ChangeSeenStatus đánh dấu message đã đọc/chưa đọc cho một subscriber.
// Filter theo cả subscriberId để subscriber không đổi được trạng thái message của người khác.
// lastSeenDate luôn được cập nhật, kể cả khi seen không đổi: đây là dấu thời gian
// lần tương tác gần nhất, không phải lần chuyển trạng thái đầu tiên.
func (s *MessageService) ChangeSeenStatus(ctx context.Context, envID, subscriberID, messageID primitive.ObjectID, seen bool) (models.Message, error) {
	var zero models.Message
	filter := bson.M{
		"_id":                messageID,
		"ownerEnvironmentId": envID,
		"subscriberId":       subscriberID,
	}

	customBson := &utility.CustomBson{}
	update, err := customBson.Set(models.SeenUpdate{
		Seen:         seen,
		LastSeenDate: utility.CurrentTimeInMilli(),
	})
	if err != nil {
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi tạo dữ liệu cập nhật trạng thái đọc",
			common.StatusBadRequest,
			err,
		)
	}
	return s.UpdateOne(ctx, filter, update, nil)
}

// SoftDelete xóa mềm message: đánh dấu deleted, không xóa document.
// Xóa một message đã xóa trước đó trả về ErrNotFound.
func (s *MessageService) SoftDelete(ctx context.Context, envID, messageID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                messageID,
		"ownerEnvironmentId": envID,
		"deleted":            false,
	}
	update := bson.M{
		"$set": bson.M{
			"deleted":   true,
			"deletedAt": utility.CurrentTimeInMilli(),
		},
	}

	_, err := s.UpdateOne(ctx, filter, update, nil)
	return err
}

// buildDeletedFilter gộp điều kiện lọc bổ sung dưới phạm vi environment.
// Tầng gọi không ghi đè được ownerEnvironmentId và deleted.
func buildDeletedFilter(envID primitive.ObjectID, extra bson.M) bson.M {
	filter := bson.M{}
	for key, value := range extra {
		filter[key] = value
	}
	filter["ownerEnvironmentId"] = envID
	filter["deleted"] = true
	return filter
}

// FindDeleted lấy các message đã xóa mềm trong environment, mới nhất trước.
// extra là điều kiện lọc bổ sung (channel, subscriberId...), có thể nil.
func (s *MessageService) FindDeleted(ctx context.Context, envID primitive.ObjectID, extra bson.M) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, buildDeletedFilter(envID, extra), opts)
}

// buildSubscriberMessageFilter dựng filter MongoDB cho các truy vấn message theo subscriber.
// Luôn loại message đã xóa mềm. Ba trạng thái lọc feed:
//   - không lọc: bỏ qua feedId
//   - Unassigned: {"feedId": {"$eq": null}}
//   - theo identifier: phân giải identifier -> feed ID mỗi lần gọi, {"feedId": {"$in": ids}}
//
// Identifier không tồn tại cho ra danh sách ID rỗng, filter {"$in": []} không khớp gì - đúng ý đồ.
func (s *MessageService) buildSubscriberMessageFilter(ctx context.Context, envID, subscriberID primitive.ObjectID, channel string, query models.SubscriberMessageQuery) (bson.M, error) {
	filter := bson.M{
		"ownerEnvironmentId": envID,
		"subscriberId":       subscriberID,
		"deleted":            false,
	}
	if channel != "" {
		filter["channel"] = channel
	}

	if query.Unassigned {
		filter["feedId"] = bson.M{"$eq": nil}
	} else if len(query.FeedIdentifiers) > 0 {
		feedIDs, err := s.feedService.ResolveIdentifiers(ctx, envID, query.FeedIdentifiers)
		if err != nil {
			return nil, err
		}
		filter["feedId"] = bson.M{"$in": feedIDs}
	}

	if query.Seen != nil {
		filter["seen"] = *query.Seen
	}

	return filter, nil
}

// FindBySubscriberChannel lấy message của một subscriber trên một kênh, phân trang, mới nhất trước
func (s *MessageService) FindBySubscriberChannel(ctx context.Context, envID, subscriberID primitive.ObjectID, channel string, query models.SubscriberMessageQuery, page, limit int64) (*basemodels.PaginateResult[models.Message], error) {
	filter, err := s.buildSubscriberMessageFilter(ctx, envID, subscriberID, channel, query)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// GetTotalCount đếm message của subscriber khớp bộ lọc (không tính message đã xóa)
func (s *MessageService) GetTotalCount(ctx context.Context, envID, subscriberID primitive.ObjectID, channel string, query models.SubscriberMessageQuery) (int64, error) {
	filter, err := s.buildSubscriberMessageFilter(ctx, envID, subscriberID, channel, query)
	if err != nil {
		return 0, err
	}
	return s.CountDocuments(ctx, filter)
}

// forceUnseen ép query về trạng thái chưa đọc, bỏ qua giá trị Seen do caller truyền vào
func forceUnseen(query models.SubscriberMessageQuery) models.SubscriberMessageQuery {
	unseen := false
	query.Seen = &unseen
	return query
}

// GetUnseenCount đếm message chưa đọc của subscriber. Luôn ép seen=false,
// bỏ qua giá trị Seen trong query nếu có.
func (s *MessageService) GetUnseenCount(ctx context.Context, envID, subscriberID primitive.ObjectID, channel string, query models.SubscriberMessageQuery) (int64, error) {
	filter, err := s.buildSubscriberMessageFilter(ctx, envID, subscriberID, channel, forceUnseen(query))
	if err != nil {
		return 0, err
	}
	return s.CountDocuments(ctx, filter)
}

// buildFeedMatchFilter dựng filter cho activity feed toàn environment.
// Emails được phân giải thành subscriber ID trước khi match.
func (s *MessageService) buildFeedMatchFilter(ctx context.Context, envID primitive.ObjectID, query models.FeedQuery) (bson.M, error) {
	filter := bson.M{
		"ownerEnvironmentId": envID,
		"deleted":            false,
	}

	if len(query.Channels) > 0 {
		filter["channel"] = bson.M{"$in": query.Channels}
	}
	if len(query.TemplateIDs) > 0 {
		filter["templateId"] = bson.M{"$in": query.TemplateIDs}
	}
	if query.TransactionID != "" {
		filter["transactionId"] = query.TransactionID
	}
	for key, value := range query.Payload {
		filter["payload."+key] = value
	}

	subscriberIDs := make([]primitive.ObjectID, 0)
	if len(query.Emails) > 0 {
		ids, err := s.subscriberService.FindIDsByEmails(ctx, envID, query.Emails)
		if err != nil {
			return nil, err
		}
		subscriberIDs = append(subscriberIDs, ids...)
	}
	if query.SubscriberIdentifier != "" {
		sub, err := s.subscriberService.FindByIdentifier(ctx, envID, query.SubscriberIdentifier)
		if err == nil {
			subscriberIDs = append(subscriberIDs, sub.ID)
		} else if err != common.ErrNotFound {
			return nil, err
		}
	}
	if len(query.Emails) > 0 || query.SubscriberIdentifier != "" {
		filter["subscriberId"] = bson.M{"$in": subscriberIDs}
	}

	return filter, nil
}

// GetFeed trả về activity feed của environment: tổng số bản ghi khớp filter
// và một trang dữ liệu kèm thông tin subscriber và template qua $lookup.
// Cả count và data dùng chung một filter để hai con số nhất quán.
func (s *MessageService) GetFeed(ctx context.Context, envID primitive.ObjectID, query models.FeedQuery, page, limit int64) (*models.FeedResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	filter, err := s.buildFeedMatchFilter(ctx, envID, query)
	if err != nil {
		return nil, err
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		if filterJSON, jsonErr := utility.MapToJSON(filter); jsonErr == nil {
			logrus.WithField("filter", filterJSON).Debug("Filter activity feed")
		}
	}

	totalCount, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$sort": bson.M{"createdAt": -1}},
		{"$skip": (page - 1) * limit},
		{"$limit": limit},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.Subscribers,
			"localField":   "subscriberId",
			"foreignField": "_id",
			"as":           "subscriber",
			"pipeline": []bson.M{
				{"$project": bson.M{"firstName": 1, "lastName": 1, "email": 1}},
			},
		}},
		{"$unwind": bson.M{"path": "$subscriber", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from":         global.MongoDB_ColNames.MessageTemplates,
			"localField":   "templateId",
			"foreignField": "_id",
			"as":           "template",
			"pipeline": []bson.M{
				{"$project": bson.M{"name": 1}},
			},
		}},
		{"$unwind": bson.M{"path": "$template", "preserveNullAndEmptyArrays": true}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	items := make([]models.FeedItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi định dạng dữ liệu khi decode từ MongoDB",
			common.StatusBadRequest,
			err,
		)
	}

	return &models.FeedResult{
		TotalCount: totalCount,
		Data:       items,
	}, nil
}

// BuildActivityGraphPipeline dựng pipeline thống kê số message theo ngày (UTC).
// createdAt lưu dạng Unix milli nên phải qua $toDate trước khi $dateToString.
func BuildActivityGraphPipeline(envID primitive.ObjectID, since int64) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"ownerEnvironmentId": envID,
			"deleted":            false,
			"createdAt":          bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{
					"format": "%Y-%m-%d",
					"date":   bson.M{"$toDate": "$createdAt"},
				},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": -1}},
	}
}

// GetActivityGraphStats đếm message theo ngày trong N ngày gần nhất, ngày mới nhất trước.
// Ngày không có message nào không xuất hiện trong kết quả.
func (s *MessageService) GetActivityGraphStats(ctx context.Context, envID primitive.ObjectID, days int) ([]models.DayStat, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days).UnixMilli()

	cursor, err := s.Collection().Aggregate(ctx, BuildActivityGraphPipeline(envID, since))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	stats := make([]models.DayStat, 0)
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			"Lỗi định dạng dữ liệu khi decode từ MongoDB",
			common.StatusBadRequest,
			err,
		)
	}
	return stats, nil
}
