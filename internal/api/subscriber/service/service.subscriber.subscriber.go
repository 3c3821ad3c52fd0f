package subsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/JoWinner/novu/internal/api/base/service"
	submodels "github.com/JoWinner/novu/internal/api/subscriber/models"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/global"
)

// SubscriberService là cấu trúc chứa các phương thức liên quan đến Subscriber
type SubscriberService struct {
	*basesvc.BaseServiceMongoImpl[submodels.Subscriber]
}

// NewSubscriberService tạo mới SubscriberService
func NewSubscriberService() (*SubscriberService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscribers)
	if !exist {
		return nil, fmt.Errorf("failed to get subscribers collection: %v", common.ErrNotFound)
	}

	return &SubscriberService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[submodels.Subscriber](collection),
	}, nil
}

// FindByIdentifier tìm subscriber theo định danh bên ngoài trong phạm vi environment
func (s *SubscriberService) FindByIdentifier(ctx context.Context, envID primitive.ObjectID, identifier string) (submodels.Subscriber, error) {
	return s.FindOne(ctx, bson.M{
		"ownerEnvironmentId": envID,
		"subscriberId":       identifier,
	}, nil)
}

// FindIDsByEmails phân giải danh sách email thành danh sách subscriber ID trong phạm vi environment.
// Email không tồn tại bị bỏ qua, không trả lỗi.
func (s *SubscriberService) FindIDsByEmails(ctx context.Context, envID primitive.ObjectID, emails []string) ([]primitive.ObjectID, error) {
	if len(emails) == 0 {
		return []primitive.ObjectID{}, nil
	}

	subscribers, err := s.Find(ctx, bson.M{
		"ownerEnvironmentId": envID,
		"email":              bson.M{"$in": emails},
	}, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(subscribers))
	for _, sub := range subscribers {
		ids = append(ids, sub.ID)
	}
	return ids, nil
}

// ValidateUniqueness kiểm tra subscriberId chưa tồn tại trong environment (business logic validation)
func (s *SubscriberService) ValidateUniqueness(ctx context.Context, subscriber submodels.Subscriber) error {
	if subscriber.SubscriberIdentifier == "" || subscriber.OwnerEnvironmentID.IsZero() {
		return nil
	}

	filter := bson.M{
		"ownerEnvironmentId": subscriber.OwnerEnvironmentID,
		"subscriberId":       subscriber.SubscriberIdentifier,
	}
	if !subscriber.ID.IsZero() {
		filter["_id"] = bson.M{"$ne": subscriber.ID}
	}

	_, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Đã tồn tại subscriber với định danh '%s' trong environment này", subscriber.SubscriberIdentifier),
			common.StatusConflict,
			nil,
		)
	}
	if err != common.ErrNotFound {
		return fmt.Errorf("lỗi khi kiểm tra uniqueness subscriberId: %v", err)
	}
	return nil
}

// InsertOne override để thêm business logic validation trước khi insert
func (s *SubscriberService) InsertOne(ctx context.Context, data submodels.Subscriber) (submodels.Subscriber, error) {
	if err := s.ValidateUniqueness(ctx, data); err != nil {
		return data, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}
