package feedsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/JoWinner/novu/internal/api/base/service"
	feedmodels "github.com/JoWinner/novu/internal/api/feed/models"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/global"
)

// FeedService là cấu trúc chứa các phương thức liên quan đến Feed
type FeedService struct {
	*basesvc.BaseServiceMongoImpl[feedmodels.Feed]
}

// NewFeedService tạo mới FeedService
func NewFeedService() (*FeedService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Feeds)
	if !exist {
		return nil, fmt.Errorf("failed to get feeds collection: %v", common.ErrNotFound)
	}

	return &FeedService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[feedmodels.Feed](collection),
	}, nil
}

// ResolveIdentifiers phân giải danh sách identifier thành danh sách feed ID trong phạm vi environment.
// Identifier không tồn tại bị bỏ qua, không trả lỗi.
// Không cache kết quả: feed có thể được tạo/xóa giữa hai lần gọi, mỗi lần phân giải đọc trạng thái mới nhất.
func (s *FeedService) ResolveIdentifiers(ctx context.Context, envID primitive.ObjectID, identifiers []string) ([]primitive.ObjectID, error) {
	if len(identifiers) == 0 {
		return []primitive.ObjectID{}, nil
	}

	filter := bson.M{
		"ownerEnvironmentId": envID,
		"identifier":         bson.M{"$in": identifiers},
	}

	feeds, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(feeds))
	for _, feed := range feeds {
		ids = append(ids, feed.ID)
	}
	return ids, nil
}

// ValidateUniqueness kiểm tra identifier chưa tồn tại trong environment (business logic validation)
func (s *FeedService) ValidateUniqueness(ctx context.Context, feed feedmodels.Feed) error {
	if feed.Identifier == "" || feed.OwnerEnvironmentID.IsZero() {
		return nil
	}

	filter := bson.M{
		"ownerEnvironmentId": feed.OwnerEnvironmentID,
		"identifier":         feed.Identifier,
	}
	if !feed.ID.IsZero() {
		filter["_id"] = bson.M{"$ne": feed.ID}
	}

	_, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Đã tồn tại feed với identifier '%s' trong environment này. Mỗi environment chỉ có thể có 1 feed cho mỗi identifier", feed.Identifier),
			common.StatusConflict,
			nil,
		)
	}
	if err != common.ErrNotFound {
		return fmt.Errorf("lỗi khi kiểm tra uniqueness identifier: %v", err)
	}
	return nil
}

// InsertOne override để thêm business logic validation trước khi insert
func (s *FeedService) InsertOne(ctx context.Context, data feedmodels.Feed) (feedmodels.Feed, error) {
	if err := s.ValidateUniqueness(ctx, data); err != nil {
		return data, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}
