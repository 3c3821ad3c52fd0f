package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/JoWinner/novu/config"
	feedmodels "github.com/JoWinner/novu/internal/api/feed/models"
	msgmodels "github.com/JoWinner/novu/internal/api/message/models"
	submodels "github.com/JoWinner/novu/internal/api/subscriber/models"
	tplmodels "github.com/JoWinner/novu/internal/api/template/models"
	"github.com/JoWinner/novu/internal/database"
	"github.com/JoWinner/novu/internal/global"
	"github.com/JoWinner/novu/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Messages = "messages"
	global.MongoDB_ColNames.Feeds = "feeds"
	global.MongoDB_ColNames.Subscribers = "subscribers"
	global.MongoDB_ColNames.MessageTemplates = "message_templates"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, no_sql_injection, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Data
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Messages), msgmodels.Message{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Feeds), feedmodels.Feed{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Subscribers), submodels.Subscriber{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.MessageTemplates), tplmodels.MessageTemplate{})

	// Các compound index nhiều field không định nghĩa được qua model tag.
	// Tạo index thất bại không chặn server khởi động, chỉ cảnh báo.
	if err := database.CreateMessageAdditionalIndexes(context.TODO(), db); err != nil {
		utility.LogWarning("Failed to create additional message indexes", "error", err.Error())
	}
}
