package tplsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/JoWinner/novu/internal/api/base/service"
	msgmodels "github.com/JoWinner/novu/internal/api/message/models"
	"github.com/JoWinner/novu/internal/api/template/models"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/global"
)

// TemplateService là cấu trúc chứa các phương thức liên quan đến MessageTemplate
type TemplateService struct {
	*basesvc.BaseServiceMongoImpl[models.MessageTemplate]
}

// NewTemplateService tạo mới TemplateService
func NewTemplateService() (*TemplateService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MessageTemplates)
	if !exist {
		return nil, fmt.Errorf("failed to get message templates collection: %v", common.ErrNotFound)
	}

	return &TemplateService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.MessageTemplate](collection),
	}, nil
}

// validateChannel kiểm tra channel thuộc tập kênh được hỗ trợ
func validateChannel(channel string) error {
	if !msgmodels.IsValidChannel(channel) {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Channel '%s' không hợp lệ. Các channel được hỗ trợ: in_app, email, sms, push, chat", channel),
			common.StatusBadRequest,
			nil,
		)
	}
	return nil
}

// ValidateUniqueness kiểm tra tên template chưa tồn tại trong environment (business logic validation)
func (s *TemplateService) ValidateUniqueness(ctx context.Context, template models.MessageTemplate) error {
	if template.Name == "" || template.OwnerEnvironmentID.IsZero() {
		return nil
	}

	filter := bson.M{
		"ownerEnvironmentId": template.OwnerEnvironmentID,
		"name":               template.Name,
	}
	if !template.ID.IsZero() {
		filter["_id"] = bson.M{"$ne": template.ID}
	}

	_, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Đã tồn tại template với tên '%s' trong environment này", template.Name),
			common.StatusConflict,
			nil,
		)
	}
	if err != common.ErrNotFound {
		return fmt.Errorf("lỗi khi kiểm tra uniqueness tên template: %v", err)
	}
	return nil
}

// InsertOne override để thêm business logic validation trước khi insert
func (s *TemplateService) InsertOne(ctx context.Context, data models.MessageTemplate) (models.MessageTemplate, error) {
	if err := validateChannel(data.Channel); err != nil {
		return data, err
	}
	if err := s.ValidateUniqueness(ctx, data); err != nil {
		return data, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// UpdateFeed gán lại feed cho template trong phạm vi environment.
// feedID nil nghĩa là gỡ template khỏi feed. Trả về template sau khi cập nhật.
func (s *TemplateService) UpdateFeed(ctx context.Context, envID, templateID primitive.ObjectID, feedID *primitive.ObjectID) (models.MessageTemplate, error) {
	filter := bson.M{
		"_id":                templateID,
		"ownerEnvironmentId": envID,
	}
	update := bson.M{
		"$set": bson.M{"feedId": feedID},
	}
	return s.UpdateOne(ctx, filter, update, nil)
}
